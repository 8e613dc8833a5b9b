package directory

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
