package payroll

import (
	"testing"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testPolicy() payroll.PolicyConfig {
	cfg := payroll.PolicyConfig{
		RoleCoefficients: map[string]decimal.Decimal{
			"STAFF":   decimal.NewFromInt(1),
			"MANAGER": decimal.NewFromFloat(1.4),
		},
		CommissionTiers: []payroll.CommissionTier{
			{MinAchievementPercent: decimal.NewFromFloat(0.8), CommissionRate: decimal.NewFromFloat(0.02)},
			{MinAchievementPercent: decimal.NewFromFloat(1.2), CommissionRate: decimal.NewFromFloat(0.05)},
			{MinAchievementPercent: decimal.NewFromFloat(1.0), CommissionRate: decimal.NewFromFloat(0.04)},
		},
		Insurance: payroll.InsuranceConfig{
			SocialPercent:       decimal.NewFromInt(8),
			HealthPercent:       decimal.NewFromFloat(1.5),
			UnemploymentPercent: decimal.NewFromInt(1),
		},
	}
	cfg.Normalize()
	return cfg
}

func TestComputeSalary_ProRatedExample(t *testing.T) {
	t.Parallel()

	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary:          d(10_000_000),
		RoleTitle:           "STAFF",
		ProRateByAttendance: true,
		ValidWorkDays:       20,
		StandardWorkDays:    22,
	}, testPolicy())

	assert.True(t, b.EffectiveBase.Equal(d(9_090_909)), b.EffectiveBase.String())
	assert.True(t, b.RoleAllowance.Equal(d(9_090_909)), b.RoleAllowance.String())
	assert.True(t, b.AchievementRatio.IsZero())
	assert.True(t, b.Commission.IsZero())
	// insurance falls back to the full base salary
	assert.True(t, b.InsuranceBasis.Equal(d(10_000_000)))
	assert.True(t, b.SocialInsurance.Equal(d(800_000)), b.SocialInsurance.String())
	assert.True(t, b.HealthInsurance.Equal(d(150_000)))
	assert.True(t, b.UnemploymentInsurance.Equal(d(100_000)))
	assert.True(t, b.TotalInsurance.Equal(d(1_050_000)))
	assert.True(t, b.TotalNet.Equal(d(17_131_818)), b.TotalNet.String())
}

func TestComputeSalary_NoProRateIgnoresWorkDays(t *testing.T) {
	t.Parallel()

	for _, validDays := range []int{0, 5, 22, 40} {
		b := ComputeSalary(payroll.SalaryInput{
			BaseSalary:          d(12_000_000),
			RoleTitle:           "STAFF",
			ProRateByAttendance: false,
			ValidWorkDays:       validDays,
			StandardWorkDays:    22,
		}, testPolicy())

		assert.True(t, b.EffectiveBase.Equal(d(12_000_000)), "validDays=%d", validDays)
	}
}

func TestComputeSalary_CommissionTierSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		achieved int64
		target   int64
		wantRate float64
	}{
		{30_000_000, 40_000_000, 0},    // ratio 0.75, below every tier
		{32_000_000, 40_000_000, 0.02}, // ratio 0.8, lowest tier
		{40_000_000, 40_000_000, 0.04}, // ratio 1.0
		{50_000_000, 40_000_000, 0.05}, // ratio 1.25, highest tier wins
		{10_000_000, 0, 0},             // zero target, ratio 0
	}

	for _, tc := range cases {
		b := ComputeSalary(payroll.SalaryInput{
			BaseSalary:    d(10_000_000),
			RoleTitle:     "STAFF",
			SalesAchieved: d(tc.achieved),
			SalesTarget:   d(tc.target),
		}, testPolicy())

		assert.True(t, b.CommissionRate.Equal(decimal.NewFromFloat(tc.wantRate)),
			"achieved=%d target=%d got rate %s", tc.achieved, tc.target, b.CommissionRate)
	}
}

func TestComputeSalary_CommissionCapUsesSmallerCap(t *testing.T) {
	t.Parallel()

	// ratio 1.25 -> rate 0.05 -> raw 5,000,000
	// capByBase = 4,000,000 * 0.30 = 1,200,000
	// capBySales = 100,000,000 * 0.08 = 8,000,000
	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary:    d(4_000_000),
		RoleTitle:     "STAFF",
		SalesAchieved: d(100_000_000),
		SalesTarget:   d(80_000_000),
	}, testPolicy())

	assert.True(t, b.RawCommission.Equal(d(5_000_000)), b.RawCommission.String())
	assert.True(t, b.CommissionCap.Equal(d(1_200_000)), b.CommissionCap.String())
	assert.True(t, b.Commission.Equal(d(1_200_000)), b.Commission.String())
}

func TestComputeSalary_CommissionBelowCapIsUncapped(t *testing.T) {
	t.Parallel()

	// ratio 1.0 -> rate 0.04 -> raw 1,600,000; caps are 3,000,000 and 3,200,000
	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary:    d(10_000_000),
		RoleTitle:     "STAFF",
		SalesAchieved: d(40_000_000),
		SalesTarget:   d(40_000_000),
	}, testPolicy())

	assert.True(t, b.Commission.Equal(d(1_600_000)), b.Commission.String())
	assert.True(t, b.Commission.LessThanOrEqual(b.CommissionCap))
}

func TestComputeSalary_UnknownRoleCoefficientZero(t *testing.T) {
	t.Parallel()

	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary: d(10_000_000),
		RoleTitle:  "CONTRACTOR",
	}, testPolicy())

	assert.True(t, b.RoleCoefficient.IsZero())
	assert.True(t, b.RoleAllowance.IsZero())
}

func TestComputeSalary_InsuranceBasisOverride(t *testing.T) {
	t.Parallel()

	basis := d(6_000_000)
	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary:      d(10_000_000),
		InsuranceSalary: &basis,
		RoleTitle:       "STAFF",
	}, testPolicy())

	assert.True(t, b.InsuranceBasis.Equal(basis))
	assert.True(t, b.SocialInsurance.Equal(d(480_000)), b.SocialInsurance.String())

	// non-positive override falls back to the base salary
	zero := decimal.Zero
	b = ComputeSalary(payroll.SalaryInput{
		BaseSalary:      d(10_000_000),
		InsuranceSalary: &zero,
		RoleTitle:       "STAFF",
	}, testPolicy())
	assert.True(t, b.InsuranceBasis.Equal(d(10_000_000)))
}

func TestComputeSalary_ManualAdjustments(t *testing.T) {
	t.Parallel()

	b := ComputeSalary(payroll.SalaryInput{
		BaseSalary:      d(10_000_000),
		RoleTitle:       "MANAGER",
		ManualAllowance: d(500_000),
		ManualDeduction: d(200_000),
		KPIBonus:        d(300_000),
	}, testPolicy())

	// role allowance = round(10,000,000 * 1.4) = 14,000,000
	assert.True(t, b.RoleAllowance.Equal(d(14_000_000)))
	assert.True(t, b.TotalAllowance.Equal(d(14_800_000)), b.TotalAllowance.String())
	assert.True(t, b.TotalDeduction.Equal(d(1_250_000)), b.TotalDeduction.String())
	assert.True(t, b.TotalNet.Equal(d(23_550_000)), b.TotalNet.String())
}

func TestPolicyConfigNormalize(t *testing.T) {
	t.Parallel()

	cfg := payroll.PolicyConfig{}
	cfg.Normalize()

	assert.Equal(t, payroll.DefaultStandardWorkDays, cfg.StandardWorkDays)
	assert.True(t, cfg.CommissionCapByBasePercent.Equal(decimal.NewFromFloat(0.30)))
	assert.True(t, cfg.CommissionCapBySalesPercent.Equal(decimal.NewFromFloat(0.08)))

	sorted := testPolicy()
	for i := 1; i < len(sorted.CommissionTiers); i++ {
		assert.True(t, sorted.CommissionTiers[i-1].MinAchievementPercent.
			GreaterThanOrEqual(sorted.CommissionTiers[i].MinAchievementPercent))
	}
}
