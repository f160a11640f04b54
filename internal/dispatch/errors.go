package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrNotValidated     = errors.New("selection must be validated before dispatch")
	ErrDispatchInFlight = errors.New("a payment request is already being sent")
	ErrUnknownChannel   = errors.New("unknown dispatch channel")
)

// WrongCountError is returned when the number of selected recipients is not
// participantCount - 1. The current user is always the remaining participant.
type WrongCountError struct {
	Expected int
	Actual   int
}

func (e *WrongCountError) Error() string {
	return fmt.Sprintf("please select %d contacts (selected %d)", e.Expected, e.Actual)
}
