package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/employee"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A failed cycle lock carries the number of records still in the way.
	var lockErr *payroll.CycleLockError
	if errors.As(err, &lockErr) {
		Conflict(w, lockErr.Error(), map[string]string{
			"cycle_id": lockErr.CycleID,
			"blocking": strconv.Itoa(lockErr.Blocking),
		})
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrFeedbackNotFound):
		NotFound(w, "Feedback not found")
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Payroll cycle not found")
	case errors.Is(err, payroll.ErrCycleAlreadyExists):
		Conflict(w, "Payroll cycle already opened", nil)
	case errors.Is(err, payroll.ErrCycleLocked):
		Conflict(w, "Payroll cycle is locked", nil)
	case errors.Is(err, payroll.ErrRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid", nil)
	case errors.Is(err, payroll.ErrRecordAlreadyConfirmed):
		Conflict(w, "Payroll record already confirmed", nil)
	case errors.Is(err, payroll.ErrRecordNotConfirmable):
		Conflict(w, "Payroll record is not awaiting confirmation", nil)
	case errors.Is(err, payroll.ErrFeedbackAlreadyResolved):
		Conflict(w, "Feedback already resolved", nil)
	case errors.Is(err, payroll.ErrNotRecordOwner):
		Forbidden(w, "Record belongs to another employee")
	case errors.Is(err, payroll.ErrPolicyConfigNotFound):
		InternalServerError(w, "Payroll policy is not configured")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today", nil)
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open session to check out of", nil)
	case errors.Is(err, attendance.ErrSessionNotComplete):
		Conflict(w, "Session has no check-out yet", nil)
	case errors.Is(err, attendance.ErrShiftConfigMissing):
		InternalServerError(w, "Shift windows are not configured")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
