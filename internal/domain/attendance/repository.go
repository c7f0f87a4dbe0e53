package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	GetOpenByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Session, error)
	Update(ctx context.Context, session Session) error
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Session, error)
	CountCompletedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
}

// ShiftConfigRepository loads the shift window set and holiday calendar.
type ShiftConfigRepository interface {
	GetShiftConfig(ctx context.Context) (ShiftConfig, error)
}
