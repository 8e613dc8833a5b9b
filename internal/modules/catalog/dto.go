package catalog

type CreateEquipmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Available   *bool  `json:"available"`
}

type UpdateEquipmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Available   *bool  `json:"available"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
