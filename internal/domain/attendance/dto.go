package attendance

import (
	"github.com/hoangson-hr/payday-backend-go/internal/domain/shift"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type CheckInRequest struct {
	EmployeeID string `json:"-"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

// CorrectSessionRequest rewrites a session's timestamps and re-runs the
// shift engine. Admin only.
type CorrectSessionRequest struct {
	SessionID string `json:"-"`
	CheckIn   string `json:"check_in"`  // RFC 3339
	CheckOut  string `json:"check_out"` // RFC 3339
}

func (r *CorrectSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "is required"})
	}
	if validator.IsEmpty(r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type SessionResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Date            string          `json:"date"`
	CheckIn         string          `json:"check_in"`
	CheckOut        *string         `json:"check_out,omitempty"`
	DayType         string          `json:"day_type"`
	Status          string          `json:"status"`
	TotalMinutes    int             `json:"total_minutes"`
	RegularMinutes  int             `json:"regular_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	NightBonus      decimal.Decimal `json:"night_bonus"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	TotalPay        decimal.Decimal `json:"total_pay"`

	// Per-window breakdown, only present right after the engine ran.
	Windows []shift.WindowResult `json:"windows,omitempty"`
}
