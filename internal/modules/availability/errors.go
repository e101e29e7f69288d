package availability

import "errors"

var (
	ErrDateBlocked = errors.New("date is blocked")
	ErrDateBooked  = errors.New("date already has a confirmed event")
	ErrSlotTaken   = errors.New("showing slot is already taken")
)
