package attendance

import "errors"

var (
	ErrSessionNotFound    = errors.New("attendance session not found")
	ErrAlreadyCheckedIn   = errors.New("employee already has an open session today")
	ErrNoOpenSession      = errors.New("no open attendance session to check out")
	ErrSessionNotComplete = errors.New("attendance session has no check-out yet")
	ErrShiftConfigMissing = errors.New("shift configuration not found")
)
