package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const sessionColumns = `
	id, employee_id, date, check_in, check_out, day_type, status,
	total_minutes, regular_minutes, overtime_minutes,
	night_bonus, overtime_pay, total_pay, created_at, updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Date, &s.CheckIn, &s.CheckOut, &s.DayType, &s.Status,
		&s.TotalMinutes, &s.RegularMinutes, &s.OvertimeMinutes,
		&s.NightBonus, &s.OvertimePay, &s.TotalPay, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *attendanceRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, date, check_in, check_out, day_type, status,
			total_minutes, regular_minutes, overtime_minutes,
			night_bonus, overtime_pay, total_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query,
		session.ID, session.EmployeeID, session.Date, session.CheckIn, session.CheckOut,
		session.DayType, session.Status,
		session.TotalMinutes, session.RegularMinutes, session.OvertimeMinutes,
		session.NightBonus, session.OvertimePay, session.TotalPay,
	))
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return s, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}

	return s, nil
}

func (r *attendanceRepository) GetOpenByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2 AND status = $3
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, date, attendance.SessionStatusOpen))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return s, nil
}

func (r *attendanceRepository) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_in = $2, check_out = $3, status = $4,
			total_minutes = $5, regular_minutes = $6, overtime_minutes = $7,
			night_bonus = $8, overtime_pay = $9, total_pay = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		session.ID, session.CheckIn, session.CheckOut, session.Status,
		session.TotalMinutes, session.RegularMinutes, session.OvertimeMinutes,
		session.NightBonus, session.OvertimePay, session.TotalPay,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrSessionNotFound
		}
		return fmt.Errorf("failed to update attendance session: %w", err)
	}

	return nil
}

func (r *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
			AND EXTRACT(YEAR FROM date) = $2
			AND EXTRACT(MONTH FROM date) = $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

func (r *attendanceRepository) CountCompletedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	// A day with several completed sessions still counts once.
	query := `
		SELECT COUNT(DISTINCT date)
		FROM attendance_sessions
		WHERE employee_id = $1
			AND EXTRACT(YEAR FROM date) = $2
			AND EXTRACT(MONTH FROM date) = $3
			AND status = $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, year, int(month), attendance.SessionStatusCompleted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed sessions: %w", err)
	}

	return count, nil
}
