package postgresql

import (
	"context"
	"fmt"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const recordColumns = `
	pr.id, pr.employee_id, pr.cycle_id, pr.base_salary, pr.overtime_amount,
	pr.allowance, pr.bonus, pr.kpi_bonus, pr.deduction,
	pr.sales_achieved, pr.sales_target, pr.valid_work_days, pr.standard_work_days,
	pr.net_pay, pr.status, pr.confirmed_at, pr.created_at, pr.updated_at,
	e.full_name as employee_name
`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CycleID, &rec.BaseSalary, &rec.OvertimeAmount,
		&rec.Allowance, &rec.Bonus, &rec.KPIBonus, &rec.Deduction,
		&rec.SalesAchieved, &rec.SalesTarget, &rec.ValidWorkDays, &rec.StandardWorkDays,
		&rec.NetPay, &rec.Status, &rec.ConfirmedAt, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// ========== RECORDS ==========

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, cycle_id, base_salary, overtime_amount,
			allowance, bonus, kpi_bonus, deduction,
			sales_achieved, sales_target, valid_work_days, standard_work_days,
			net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, employee_id, cycle_id, base_salary, overtime_amount,
			allowance, bonus, kpi_bonus, deduction,
			sales_achieved, sales_target, valid_work_days, standard_work_days,
			net_pay, status, confirmed_at, created_at, updated_at
	`

	var rec payroll.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.CycleID, record.BaseSalary, record.OvertimeAmount,
		record.Allowance, record.Bonus, record.KPIBonus, record.Deduction,
		record.SalesAchieved, record.SalesTarget, record.ValidWorkDays, record.StandardWorkDays,
		record.NetPay, record.Status,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CycleID, &rec.BaseSalary, &rec.OvertimeAmount,
		&rec.Allowance, &rec.Bonus, &rec.KPIBonus, &rec.Deduction,
		&rec.SalesAchieved, &rec.SalesTarget, &rec.ValidWorkDays, &rec.StandardWorkDays,
		&rec.NetPay, &rec.Status, &rec.ConfirmedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	rec.Feedback, err = r.listFeedback(ctx, rec.ID)
	if err != nil {
		return payroll.Record{}, err
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByEmployeeCycle(ctx context.Context, employeeID, cycleID string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.employee_id = $1 AND pr.cycle_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, cycleID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	rec.Feedback, err = r.listFeedback(ctx, rec.ID)
	if err != nil {
		return payroll.Record{}, err
	}

	return rec, nil
}

func (r *payrollRepository) ListRecordsByCycle(ctx context.Context, cycleID string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		LEFT JOIN employees e ON pr.employee_id = e.id
		WHERE pr.cycle_id = $1
		ORDER BY pr.employee_id
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) UpdateRecord(ctx context.Context, record payroll.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET base_salary = $2, overtime_amount = $3, allowance = $4, bonus = $5,
			kpi_bonus = $6, deduction = $7, sales_achieved = $8, sales_target = $9,
			valid_work_days = $10, standard_work_days = $11, net_pay = $12,
			status = $13, confirmed_at = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID, record.BaseSalary, record.OvertimeAmount, record.Allowance, record.Bonus,
		record.KPIBonus, record.Deduction, record.SalesAchieved, record.SalesTarget,
		record.ValidWorkDays, record.StandardWorkDays, record.NetPay,
		record.Status, record.ConfirmedAt,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepository) ListCycles(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT cycle_id FROM payroll_records ORDER BY cycle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []string
	for rows.Next() {
		var cycleID string
		if err := rows.Scan(&cycleID); err != nil {
			return nil, fmt.Errorf("failed to scan cycle id: %w", err)
		}
		cycles = append(cycles, cycleID)
	}

	return cycles, nil
}

// MarkCyclePaid flips every record in the cycle to PAID in one transaction.
// The rows are locked and re-checked so a confirmation withdrawn between the
// service-level check and this call cannot slip through.
func (r *payrollRepository) MarkCyclePaid(ctx context.Context, cycleID string) (int, error) {
	var paid int

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var blocking int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FILTER (WHERE status != $2)
			FROM (
				SELECT status FROM payroll_records WHERE cycle_id = $1 FOR UPDATE
			) locked
		`, cycleID, payroll.StatusConfirmed).Scan(&blocking)
		if err != nil {
			return fmt.Errorf("failed to check cycle statuses: %w", err)
		}
		if blocking > 0 {
			return &payroll.CycleLockError{CycleID: cycleID, Blocking: blocking}
		}

		tag, err := tx.Exec(ctx, `
			UPDATE payroll_records
			SET status = $2, updated_at = NOW()
			WHERE cycle_id = $1
		`, cycleID, payroll.StatusPaid)
		if err != nil {
			return fmt.Errorf("failed to mark cycle paid: %w", err)
		}
		paid = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}

	return paid, nil
}

// ========== FEEDBACK ==========

func (r *payrollRepository) AddFeedback(ctx context.Context, feedback payroll.Feedback) (payroll.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_feedback (id, record_id, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, record_id, content, response, status, created_at
	`

	var f payroll.Feedback
	err := q.QueryRow(ctx, query,
		feedback.ID, feedback.RecordID, feedback.Content, feedback.Status,
	).Scan(&f.ID, &f.RecordID, &f.Content, &f.Response, &f.Status, &f.CreatedAt)
	if err != nil {
		return payroll.Feedback{}, fmt.Errorf("failed to add feedback: %w", err)
	}

	return f, nil
}

func (r *payrollRepository) GetFeedbackByID(ctx context.Context, recordID, feedbackID string) (payroll.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, record_id, content, response, status, created_at
		FROM payroll_feedback
		WHERE id = $1 AND record_id = $2
	`

	var f payroll.Feedback
	err := q.QueryRow(ctx, query, feedbackID, recordID).Scan(
		&f.ID, &f.RecordID, &f.Content, &f.Response, &f.Status, &f.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Feedback{}, payroll.ErrFeedbackNotFound
		}
		return payroll.Feedback{}, fmt.Errorf("failed to get feedback: %w", err)
	}

	return f, nil
}

func (r *payrollRepository) UpdateFeedback(ctx context.Context, feedback payroll.Feedback) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_feedback
		SET content = $2, response = $3, status = $4
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		feedback.ID, feedback.Content, feedback.Response, feedback.Status,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrFeedbackNotFound
		}
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	return nil
}

func (r *payrollRepository) listFeedback(ctx context.Context, recordID string) ([]payroll.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, record_id, content, response, status, created_at
		FROM payroll_feedback
		WHERE record_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []payroll.Feedback
	for rows.Next() {
		var f payroll.Feedback
		if err := rows.Scan(&f.ID, &f.RecordID, &f.Content, &f.Response, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}

	return feedback, nil
}
