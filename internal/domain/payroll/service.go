package payroll

import (
	"context"
	"io"
)

type Service interface {
	OpenCycle(ctx context.Context, req OpenCycleRequest) ([]RecordResponse, error)
	RecalculateCycle(ctx context.Context, cycleID string) ([]RecordResponse, error)
	LockCycle(ctx context.Context, cycleID string) (LockCycleResponse, error)
	ListCycles(ctx context.Context) ([]string, error)
	ListCycleRecords(ctx context.Context, cycleID string) ([]RecordResponse, error)
	CycleSummary(ctx context.Context, cycleID string) (CycleSummaryResponse, error)
	ExportCycleCSV(ctx context.Context, cycleID string, w io.Writer) error

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	UpdateMetrics(ctx context.Context, req UpdateMetricsRequest) (RecordResponse, error)
	ConfirmRecord(ctx context.Context, id, employeeID string) (RecordResponse, error)
	DisputeRecord(ctx context.Context, req DisputeRequest) (RecordResponse, error)
	ResolveFeedback(ctx context.Context, req ResolveFeedbackRequest) (RecordResponse, error)
}
