package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/leave"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedPayable(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, start_date, end_date
		FROM leave_requests
		WHERE employee_id = $1
			AND status = $2
			AND type IN ($3, $4)
			AND start_date <= $5
			AND end_date >= $6
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query,
		employeeID, leave.RequestStatusApproved, leave.TypeAnnual, leave.TypeSick, to, from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Type, &req.Status, &req.StartDate, &req.EndDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}
