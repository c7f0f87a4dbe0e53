package payroll

import (
	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeSalary composes one slip's pay breakdown from the employee's
// figures and the policy tables. Pure function; lookup misses degrade to
// safe defaults (unknown role coefficient 0, no matching tier rate 0, zero
// sales target ratio 0) instead of failing. Every amount is rounded half-up
// to the whole currency unit at the step it is produced.
//
// cfg must have been normalized (tiers sorted descending by threshold,
// defaults resolved).
func ComputeSalary(in payroll.SalaryInput, cfg payroll.PolicyConfig) payroll.SalaryBreakdown {
	var b payroll.SalaryBreakdown

	standardDays := cfg.StandardWorkDays
	if in.StandardWorkDays > 0 {
		standardDays = in.StandardWorkDays
	}
	if standardDays <= 0 {
		standardDays = payroll.DefaultStandardWorkDays
	}

	// 1. Effective base, optionally pro-rated by attendance.
	b.EffectiveBase = in.BaseSalary
	if in.ProRateByAttendance {
		b.EffectiveBase = in.BaseSalary.
			Mul(decimal.NewFromInt(int64(in.ValidWorkDays))).
			Div(decimal.NewFromInt(int64(standardDays))).
			Round(0)
	}

	// 2. Role allowance; an unknown role title carries coefficient 0.
	b.RoleCoefficient = cfg.RoleCoefficients[in.RoleTitle]
	b.RoleAllowance = b.EffectiveBase.Mul(b.RoleCoefficient).Round(0)

	// 3-4. Achievement ratio and commission tier selection.
	b.AchievementRatio = decimal.Zero
	if in.SalesTarget.IsPositive() {
		b.AchievementRatio = in.SalesAchieved.Div(in.SalesTarget)
	}
	b.CommissionRate = selectCommissionRate(cfg.CommissionTiers, b.AchievementRatio)

	// 5-6. Raw commission, capped by the smaller of the two caps.
	b.RawCommission = in.SalesAchieved.Mul(b.CommissionRate).Round(0)
	capByBase := b.EffectiveBase.Mul(cfg.CommissionCapByBasePercent).Round(0)
	capBySales := in.SalesAchieved.Mul(cfg.CommissionCapBySalesPercent).Round(0)
	b.CommissionCap = decimal.Min(capByBase, capBySales)
	if b.CommissionCap.IsNegative() {
		b.CommissionCap = decimal.Zero
	}
	b.Commission = decimal.Min(b.RawCommission, b.CommissionCap)

	// 7. Insurance on the negotiated basis, falling back to base salary.
	b.InsuranceBasis = in.BaseSalary
	if in.InsuranceSalary != nil && in.InsuranceSalary.IsPositive() {
		b.InsuranceBasis = *in.InsuranceSalary
	}
	b.SocialInsurance = b.InsuranceBasis.Mul(cfg.Insurance.SocialPercent).Div(oneHundred).Round(0)
	b.HealthInsurance = b.InsuranceBasis.Mul(cfg.Insurance.HealthPercent).Div(oneHundred).Round(0)
	b.UnemploymentInsurance = b.InsuranceBasis.Mul(cfg.Insurance.UnemploymentPercent).Div(oneHundred).Round(0)
	b.TotalInsurance = b.SocialInsurance.Add(b.HealthInsurance).Add(b.UnemploymentInsurance)

	// 8-9. Totals.
	b.TotalAllowance = b.RoleAllowance.Add(in.ManualAllowance).Add(in.KPIBonus)
	b.TotalDeduction = b.TotalInsurance.Add(in.ManualDeduction)
	b.TotalNet = b.EffectiveBase.Add(b.Commission).Add(b.TotalAllowance).Sub(b.TotalDeduction)

	return b
}

// selectCommissionRate picks the highest-threshold tier met by the ratio.
// Tiers are sorted descending, so the first match wins; no match means
// rate 0.
func selectCommissionRate(tiers []payroll.CommissionTier, ratio decimal.Decimal) decimal.Decimal {
	for _, tier := range tiers {
		if tier.MinAchievementPercent.LessThanOrEqual(ratio) {
			return tier.CommissionRate
		}
	}
	return decimal.Zero
}
