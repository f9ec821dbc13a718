package catalogRepo

import (
	"errors"
	"fmt"
)

var (
	ErrSlotNotFound            = errors.New("slot not found")
	ErrSlotUnavailable         = errors.New("slot is not available")
	ErrServiceNotFound         = errors.New("service not found")
	ErrInvalidDate             = errors.New("invalid date")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")
)

// BookingError carries a machine-readable code alongside the user-facing message.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func newBookingError(code string, err error, format string, args ...interface{}) error {
	return &BookingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
