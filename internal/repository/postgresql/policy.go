package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) payroll.PolicyRepository {
	return &policyRepository{db: db}
}

// GetPolicyConfig loads the single active policy row. The coefficient map and
// commission table live in jsonb columns so policy changes are a data edit,
// not a migration.
func (r *policyRepository) GetPolicyConfig(ctx context.Context) (payroll.PolicyConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role_coefficients, commission_tiers,
			   social_percent, health_percent, unemployment_percent,
			   commission_cap_by_base_percent, commission_cap_by_sales_percent,
			   standard_work_days
		FROM policy_config
		WHERE active = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	var cfg payroll.PolicyConfig
	var coefficientsBytes, tiersBytes []byte
	err := q.QueryRow(ctx, query).Scan(
		&coefficientsBytes, &tiersBytes,
		&cfg.Insurance.SocialPercent, &cfg.Insurance.HealthPercent, &cfg.Insurance.UnemploymentPercent,
		&cfg.CommissionCapByBasePercent, &cfg.CommissionCapBySalesPercent,
		&cfg.StandardWorkDays,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PolicyConfig{}, payroll.ErrPolicyConfigNotFound
		}
		return payroll.PolicyConfig{}, fmt.Errorf("failed to get policy config: %w", err)
	}

	if err := json.Unmarshal(coefficientsBytes, &cfg.RoleCoefficients); err != nil {
		return payroll.PolicyConfig{}, fmt.Errorf("failed to decode role coefficients: %w", err)
	}
	if err := json.Unmarshal(tiersBytes, &cfg.CommissionTiers); err != nil {
		return payroll.PolicyConfig{}, fmt.Errorf("failed to decode commission tiers: %w", err)
	}

	return cfg, nil
}
