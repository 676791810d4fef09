package ats

import (
	"github.com/pkg/errors"
)

// Error is returned for simulated failures and for non-2xx responses.
// Status is zero for simulated failures.
type Error struct {
	Op        Op
	Status    int
	Message   string
	Simulated bool
}

func (e *Error) Error() string {
	return e.Message
}

func IsSimulated(err error) bool {
	var atsErr *Error
	return errors.As(err, &atsErr) && atsErr.Simulated
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var atsErr *Error
	if errors.As(err, &atsErr) {
		return atsErr.Status
	}
	return 0
}
