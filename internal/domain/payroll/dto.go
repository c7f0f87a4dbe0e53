package payroll

import (
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type OpenCycleRequest struct {
	CycleID string `json:"cycle_id"` // "YYYY-MM"
}

func (r *OpenCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CycleID) {
		errs = append(errs, validator.ValidationError{Field: "cycle_id", Message: "is required"})
	} else if !validator.IsValidCycleID(r.CycleID) {
		errs = append(errs, validator.ValidationError{Field: "cycle_id", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DisputeRequest struct {
	RecordID   string `json:"-"`
	EmployeeID string `json:"-"`
	Content    string `json:"content"`
}

func (r *DisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResolveFeedbackRequest struct {
	RecordID   string `json:"-"`
	FeedbackID string `json:"-"`
	Response   string `json:"response"`
}

func (r *ResolveFeedbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Response) {
		errs = append(errs, validator.ValidationError{Field: "response", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateMetricsRequest edits the manual cycle metrics of one record while
// the cycle is still open. Amounts take effect on the next recalculation.
type UpdateMetricsRequest struct {
	RecordID      string           `json:"-"`
	Allowance     *decimal.Decimal `json:"allowance,omitempty"`
	Bonus         *decimal.Decimal `json:"bonus,omitempty"`
	KPIBonus      *decimal.Decimal `json:"kpi_bonus,omitempty"`
	Deduction     *decimal.Decimal `json:"deduction,omitempty"`
	SalesAchieved *decimal.Decimal `json:"sales_achieved,omitempty"`
	SalesTarget   *decimal.Decimal `json:"sales_target,omitempty"`
}

func (r *UpdateMetricsRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*decimal.Decimal{
		"allowance":      r.Allowance,
		"bonus":          r.Bonus,
		"kpi_bonus":      r.KPIBonus,
		"deduction":      r.Deduction,
		"sales_achieved": r.SalesAchieved,
		"sales_target":   r.SalesTarget,
	} {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RESPONSE DTOs ==========

type FeedbackResponse struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	Response  *string `json:"response,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type RecordResponse struct {
	ID               string             `json:"id"`
	EmployeeID       string             `json:"employee_id"`
	EmployeeName     string             `json:"employee_name,omitempty"`
	CycleID          string             `json:"cycle_id"`
	BaseSalary       decimal.Decimal    `json:"base_salary"`
	OvertimeAmount   decimal.Decimal    `json:"overtime_amount"`
	Allowance        decimal.Decimal    `json:"allowance"`
	Bonus            decimal.Decimal    `json:"bonus"`
	KPIBonus         decimal.Decimal    `json:"kpi_bonus"`
	Deduction        decimal.Decimal    `json:"deduction"`
	SalesAchieved    decimal.Decimal    `json:"sales_achieved"`
	SalesTarget      decimal.Decimal    `json:"sales_target"`
	ValidWorkDays    int                `json:"valid_work_days"`
	StandardWorkDays int                `json:"standard_work_days"`
	NetPay           decimal.Decimal    `json:"net_pay"`
	Status           string             `json:"status"`
	ConfirmedAt      *string            `json:"confirmed_at,omitempty"`
	Feedback         []FeedbackResponse `json:"feedback,omitempty"`
}

// PayslipResponse is a record plus the full formula trail behind its net pay.
type PayslipResponse struct {
	Record    RecordResponse  `json:"record"`
	Breakdown SalaryBreakdown `json:"breakdown"`
}

type LockCycleResponse struct {
	CycleID     string `json:"cycle_id"`
	RecordsPaid int    `json:"records_paid"`
}

type CycleSummaryResponse struct {
	CycleID        string          `json:"cycle_id"`
	TotalRecords   int             `json:"total_records"`
	TotalNetPay    decimal.Decimal `json:"total_net_pay"`
	CountByStatus  map[string]int  `json:"count_by_status"`
	ConfirmedCount int             `json:"confirmed_count"`
}
