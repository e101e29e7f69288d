package booking

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("booking not found")
	ErrInvalidStatus  = errors.New("invalid status for booking type")
	ErrTerminalStatus = errors.New("booking is in a terminal status")
	ErrUnknownAddOn   = errors.New("unknown or inactive add-on")
	ErrTokenExpired   = errors.New("management link has expired")
)
