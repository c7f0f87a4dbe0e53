package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/shift"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
)

type shiftConfigRepository struct {
	db *database.DB
}

func NewShiftConfigRepository(db *database.DB) attendance.ShiftConfigRepository {
	return &shiftConfigRepository{db: db}
}

func (r *shiftConfigRepository) GetShiftConfig(ctx context.Context) (attendance.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT name, start_time, end_time, standard_minutes, overtime_multiplier,
			   is_night, night_bonus, grace_late_minutes, grace_early_leave_minutes,
			   rounding_step, rounding_mode, break_minutes
		FROM shift_windows
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return attendance.ShiftConfig{}, fmt.Errorf("failed to list shift windows: %w", err)
	}
	defer rows.Close()

	var cfg attendance.ShiftConfig
	for rows.Next() {
		var w shift.Window
		if err := rows.Scan(
			&w.Name, &w.Start, &w.End, &w.StandardMinutes, &w.OvertimeMultiplier,
			&w.IsNight, &w.NightBonus, &w.GraceLateMinutes, &w.GraceEarlyLeaveMinutes,
			&w.RoundingStep, &w.RoundingMode, &w.BreakMinutes,
		); err != nil {
			return attendance.ShiftConfig{}, fmt.Errorf("failed to scan shift window: %w", err)
		}
		cfg.Windows = append(cfg.Windows, w)
	}

	if len(cfg.Windows) == 0 {
		return attendance.ShiftConfig{}, attendance.ErrShiftConfigMissing
	}

	holidayRows, err := q.Query(ctx, `SELECT day FROM holidays ORDER BY day`)
	if err != nil {
		return attendance.ShiftConfig{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer holidayRows.Close()

	for holidayRows.Next() {
		var day time.Time
		if err := holidayRows.Scan(&day); err != nil {
			return attendance.ShiftConfig{}, fmt.Errorf("failed to scan holiday: %w", err)
		}
		cfg.Holidays = append(cfg.Holidays, day)
	}

	return cfg, nil
}
