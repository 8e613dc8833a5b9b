package domain

// Equipment is a reservable item. Available is a denormalized view of
// "no active reservation currently holds this item"; the reservation
// ledger is the only writer that keeps it in sync with reality.
type Equipment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Available   bool   `json:"available"`
}
