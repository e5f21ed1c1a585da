package errors

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("state conflict")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
