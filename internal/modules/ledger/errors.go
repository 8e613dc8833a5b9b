package ledger

import "errors"

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrValidation        = errors.New("validation error")
	ErrUserNotFound      = errors.New("reservation user not found")
	ErrEquipmentNotFound = errors.New("reservation equipment not found")
	ErrNotAvailable      = errors.New("equipment not available")
	ErrInvalidTransition = errors.New("invalid status transition")
)
