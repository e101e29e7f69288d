package contract

import "errors"

var (
	ErrSignerRequired = errors.New("signer name is required")
	ErrNotEvent       = errors.New("contracts apply to event bookings only")
	ErrNotFound       = errors.New("booking not found")
)
