package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses; anything unrecognized surfaces as a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
)
