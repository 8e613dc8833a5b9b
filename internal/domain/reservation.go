package domain

type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "active"
	ReservationReturned ReservationStatus = "returned"
	ReservationCanceled ReservationStatus = "canceled"
)

func (s ReservationStatus) Valid() bool {
	return s == ReservationActive || s == ReservationReturned || s == ReservationCanceled
}

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

// Reservation holds a piece of equipment for a user over a date range.
// StartDate and EndDate are YYYY-MM-DD strings, the format the stored
// collections have always used.
type Reservation struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	EquipmentID string            `json:"equipmentId"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Purpose     string            `json:"purpose"`
	Status      ReservationStatus `json:"status"`
}
