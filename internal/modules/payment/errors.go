package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNotEvent         = errors.New("only event bookings are payable")
	ErrNothingDue       = errors.New("no balance is due on this booking")
	ErrNotFound         = errors.New("booking not found")
)
