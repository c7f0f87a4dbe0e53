package leave

import (
	"context"
	"time"
)

type Repository interface {
	// ListApprovedPayable returns approved annual and sick leave for the
	// employee whose date range intersects [from, to].
	ListApprovedPayable(ctx context.Context, employeeID string, from, to time.Time) ([]Request, error)
}
