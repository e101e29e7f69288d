package schedule

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrDateAlreadyBlocked = errors.New("date is already blocked")
	ErrWindowExists       = errors.New("an identical window already exists")
	ErrNotFound           = errors.New("record not found")
)
