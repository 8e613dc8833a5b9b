package ledger

import "equipreserve/internal/domain"

type CreateReservationRequest struct {
	UserID      string `json:"userId" binding:"required"`
	EquipmentID string `json:"equipmentId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
}

type UpdateReservationRequest struct {
	UserID      string `json:"userId" binding:"required"`
	EquipmentID string `json:"equipmentId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter narrows List results; zero values mean "no constraint".
type ListFilter struct {
	UserID      string
	EquipmentID string
	Status      string
	Query       string
}

// ReservationDetails is a reservation with its references resolved to
// display names. Dangling references resolve to a placeholder instead
// of failing the read.
type ReservationDetails struct {
	domain.Reservation
	EquipmentName string `json:"equipmentName"`
	UserName      string `json:"userName"`
}
