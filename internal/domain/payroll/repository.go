package payroll

import "context"

// Repository defines data access for payroll records and their feedback
// threads. Records are keyed by (employee_id, cycle_id).
type Repository interface {
	CreateRecord(ctx context.Context, record Record) (Record, error)
	GetRecordByID(ctx context.Context, id string) (Record, error)
	GetRecordByEmployeeCycle(ctx context.Context, employeeID, cycleID string) (Record, error)
	ListRecordsByCycle(ctx context.Context, cycleID string) ([]Record, error)
	UpdateRecord(ctx context.Context, record Record) error
	ListCycles(ctx context.Context) ([]string, error)

	// MarkCyclePaid sets every record in the cycle to PAID atomically.
	MarkCyclePaid(ctx context.Context, cycleID string) (int, error)

	AddFeedback(ctx context.Context, feedback Feedback) (Feedback, error)
	GetFeedbackByID(ctx context.Context, recordID, feedbackID string) (Feedback, error)
	UpdateFeedback(ctx context.Context, feedback Feedback) error
}

// PolicyRepository loads the tunable calculation tables. The config is read
// once per calculation batch.
type PolicyRepository interface {
	GetPolicyConfig(ctx context.Context) (PolicyConfig, error)
}
