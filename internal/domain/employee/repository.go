package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListPayable returns active and probationary employees.
	ListPayable(ctx context.Context) ([]Employee, error)
}
