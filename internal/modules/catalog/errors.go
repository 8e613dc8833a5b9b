package catalog

import "errors"

var (
	ErrNotFound   = errors.New("equipment not found")
	ErrValidation = errors.New("validation error")
)
