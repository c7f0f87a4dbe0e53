package shift

import "errors"

var (
	ErrInvalidClockTime = errors.New("clock time must be in HH:mm format")
)
