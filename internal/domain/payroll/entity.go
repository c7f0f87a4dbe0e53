package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Status enum for one employee's slip within a cycle.
type Status string

const (
	StatusPendingCalc         Status = "PENDING_CALC"
	StatusWaitingConfirmation Status = "WAITING_CONFIRMATION"
	StatusConfirmed           Status = "CONFIRMED"
	StatusDisputed            Status = "DISPUTED"
	StatusPaid                Status = "PAID"
)

// FeedbackStatus enum
type FeedbackStatus string

const (
	FeedbackStatusOpen     FeedbackStatus = "OPEN"
	FeedbackStatusResolved FeedbackStatus = "RESOLVED"
)

// Record - one employee's pay for one monthly cycle
type Record struct {
	ID               string
	EmployeeID       string
	CycleID          string // "YYYY-MM"
	BaseSalary       decimal.Decimal
	OvertimeAmount   decimal.Decimal
	Allowance        decimal.Decimal
	Bonus            decimal.Decimal
	KPIBonus         decimal.Decimal
	Deduction        decimal.Decimal
	SalesAchieved    decimal.Decimal
	SalesTarget      decimal.Decimal
	ValidWorkDays    int
	StandardWorkDays int
	NetPay           decimal.Decimal
	Status           Status
	ConfirmedAt      *time.Time
	Feedback         []Feedback
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
}

// Feedback - a dispute thread entry attached to one record
type Feedback struct {
	ID        string
	RecordID  string
	Content   string
	Response  *string
	Status    FeedbackStatus
	CreatedAt time.Time
}

// CommissionTier - one row of the commission table. The highest threshold
// met by the achievement ratio wins.
type CommissionTier struct {
	MinAchievementPercent decimal.Decimal `json:"min_achievement_percent"`
	CommissionRate        decimal.Decimal `json:"commission_rate"`
}

// InsuranceConfig - statutory insurance rates, in percent of the basis.
type InsuranceConfig struct {
	SocialPercent       decimal.Decimal `json:"social_percent"`
	HealthPercent       decimal.Decimal `json:"health_percent"`
	UnemploymentPercent decimal.Decimal `json:"unemployment_percent"`
}

// PolicyConfig - the tunable tables the salary engine consumes. Loaded once
// per calculation batch and treated as read-only.
type PolicyConfig struct {
	RoleCoefficients            map[string]decimal.Decimal
	CommissionTiers             []CommissionTier
	Insurance                   InsuranceConfig
	CommissionCapByBasePercent  decimal.Decimal
	CommissionCapBySalesPercent decimal.Decimal
	StandardWorkDays            int
}

const DefaultStandardWorkDays = 22

var (
	defaultCapByBasePercent  = decimal.NewFromFloat(0.30)
	defaultCapBySalesPercent = decimal.NewFromFloat(0.08)
)

// Normalize resolves defaults and sorts commission tiers descending by
// threshold so selection is a first-match scan. Call once at the boundary.
func (c *PolicyConfig) Normalize() {
	if c.StandardWorkDays <= 0 {
		c.StandardWorkDays = DefaultStandardWorkDays
	}
	if c.CommissionCapByBasePercent.IsZero() {
		c.CommissionCapByBasePercent = defaultCapByBasePercent
	}
	if c.CommissionCapBySalesPercent.IsZero() {
		c.CommissionCapBySalesPercent = defaultCapBySalesPercent
	}
	sort.SliceStable(c.CommissionTiers, func(i, j int) bool {
		return c.CommissionTiers[i].MinAchievementPercent.GreaterThan(c.CommissionTiers[j].MinAchievementPercent)
	})
}

// SalaryInput carries one employee's figures into the salary engine.
type SalaryInput struct {
	BaseSalary          decimal.Decimal
	InsuranceSalary     *decimal.Decimal // falls back to BaseSalary when nil or <= 0
	RoleTitle           string
	ProRateByAttendance bool
	ValidWorkDays       int
	StandardWorkDays    int // 0 means the policy default
	SalesAchieved       decimal.Decimal
	SalesTarget         decimal.Decimal
	ManualAllowance     decimal.Decimal
	ManualDeduction     decimal.Decimal
	KPIBonus            decimal.Decimal
}

// SalaryBreakdown exposes every intermediate figure so the payslip UI can
// render the derivation, not just the total.
type SalaryBreakdown struct {
	EffectiveBase         decimal.Decimal `json:"effective_base"`
	RoleCoefficient       decimal.Decimal `json:"role_coefficient"`
	RoleAllowance         decimal.Decimal `json:"role_allowance"`
	AchievementRatio      decimal.Decimal `json:"achievement_ratio"`
	CommissionRate        decimal.Decimal `json:"commission_rate"`
	RawCommission         decimal.Decimal `json:"raw_commission"`
	CommissionCap         decimal.Decimal `json:"commission_cap"`
	Commission            decimal.Decimal `json:"commission"`
	InsuranceBasis        decimal.Decimal `json:"insurance_basis"`
	SocialInsurance       decimal.Decimal `json:"social_insurance"`
	HealthInsurance       decimal.Decimal `json:"health_insurance"`
	UnemploymentInsurance decimal.Decimal `json:"unemployment_insurance"`
	TotalInsurance        decimal.Decimal `json:"total_insurance"`
	TotalAllowance        decimal.Decimal `json:"total_allowance"`
	TotalDeduction        decimal.Decimal `json:"total_deduction"`
	TotalNet              decimal.Decimal `json:"total_net"`
}
