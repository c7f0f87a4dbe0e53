package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound          = errors.New("payroll record not found")
	ErrFeedbackNotFound        = errors.New("payroll feedback not found")
	ErrCycleNotFound           = errors.New("payroll cycle not found")
	ErrCycleAlreadyExists      = errors.New("payroll cycle already opened")
	ErrCycleLocked             = errors.New("payroll cycle is locked, records are immutable")
	ErrRecordAlreadyPaid       = errors.New("payroll record already paid, cannot modify")
	ErrRecordAlreadyConfirmed  = errors.New("payroll record already confirmed")
	ErrRecordNotConfirmable    = errors.New("payroll record is not awaiting confirmation")
	ErrPolicyConfigNotFound    = errors.New("payroll policy config not found")
	ErrNotRecordOwner          = errors.New("payroll record belongs to another employee")
	ErrFeedbackAlreadyResolved = errors.New("payroll feedback already resolved")
)

// CycleLockError reports a refused cycle lock together with the exact number
// of slips still awaiting confirmation, so callers can surface
// "N slips still pending".
type CycleLockError struct {
	CycleID  string
	Blocking int
}

func (e *CycleLockError) Error() string {
	return fmt.Sprintf("cannot lock cycle %s: %d records not yet confirmed", e.CycleID, e.Blocking)
}
