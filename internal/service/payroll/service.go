package payroll

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/employee"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/leave"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.Repository
	policyRepo     payroll.PolicyRepository
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository

	// Mutating cycle operations must not interleave for the same cycle:
	// a recalculation racing a lock could act on inconsistent record sets.
	// Read-only slip views go through unblocked.
	mu         sync.Mutex
	cycleLocks map[string]*sync.Mutex
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	policyRepo payroll.PolicyRepository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
) payroll.Service {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		policyRepo:     policyRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		cycleLocks:     make(map[string]*sync.Mutex),
	}
}

func (s *PayrollServiceImpl) cycleMutex(cycleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cycleLocks[cycleID]
	if !ok {
		m = &sync.Mutex{}
		s.cycleLocks[cycleID] = m
	}
	return m
}

// cycleMonth parses a "YYYY-MM" cycle identifier.
func cycleMonth(cycleID string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", cycleID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cycle id %q: %w", cycleID, err)
	}
	return t.Year(), t.Month(), nil
}

// ========== CYCLE OPERATIONS ==========

func (s *PayrollServiceImpl) OpenCycle(ctx context.Context, req payroll.OpenCycleRequest) ([]payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	mu := s.cycleMutex(req.CycleID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.payrollRepo.ListRecordsByCycle(ctx, req.CycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cycle records: %w", err)
	}
	if len(existing) > 0 {
		return nil, payroll.ErrCycleAlreadyExists
	}

	cfg, err := s.policyRepo.GetPolicyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy config: %w", err)
	}
	cfg.Normalize()

	employees, err := s.employeeRepo.ListPayable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payable employees: %w", err)
	}

	var records []payroll.Record
	for _, emp := range employees {
		record := payroll.Record{
			ID:               uuid.NewString(),
			EmployeeID:       emp.ID,
			CycleID:          req.CycleID,
			BaseSalary:       emp.BaseSalary,
			OvertimeAmount:   decimal.Zero,
			Allowance:        decimal.Zero,
			Bonus:            decimal.Zero,
			KPIBonus:         decimal.Zero,
			Deduction:        decimal.Zero,
			SalesAchieved:    decimal.Zero,
			SalesTarget:      decimal.Zero,
			ValidWorkDays:    cfg.StandardWorkDays,
			StandardWorkDays: cfg.StandardWorkDays,
			NetPay:           decimal.Zero,
			Status:           payroll.StatusPendingCalc,
		}

		created, err := s.payrollRepo.CreateRecord(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
		}
		records = append(records, created)
	}

	return mapToRecordResponses(records), nil
}

func (s *PayrollServiceImpl) RecalculateCycle(ctx context.Context, cycleID string) ([]payroll.RecordResponse, error) {
	year, month, err := cycleMonth(cycleID)
	if err != nil {
		return nil, err
	}

	mu := s.cycleMutex(cycleID)
	mu.Lock()
	defer mu.Unlock()

	records, err := s.payrollRepo.ListRecordsByCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycle records: %w", err)
	}
	if len(records) == 0 {
		return nil, payroll.ErrCycleNotFound
	}
	for _, record := range records {
		if record.Status == payroll.StatusPaid {
			return nil, payroll.ErrCycleLocked
		}
	}

	cfg, err := s.policyRepo.GetPolicyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy config: %w", err)
	}
	cfg.Normalize()

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	updated := make([]payroll.Record, 0, len(records))
	for _, record := range records {
		emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				// Orphaned record; leave it untouched rather than zero it out.
				updated = append(updated, record)
				continue
			}
			return nil, fmt.Errorf("failed to load employee %s: %w", record.EmployeeID, err)
		}

		completedDays, err := s.attendanceRepo.CountCompletedInMonth(ctx, record.EmployeeID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed sessions for %s: %w", record.EmployeeID, err)
		}
		leaves, err := s.leaveRepo.ListApprovedPayable(ctx, record.EmployeeID, firstOfMonth, lastOfMonth)
		if err != nil {
			return nil, fmt.Errorf("failed to list approved leave for %s: %w", record.EmployeeID, err)
		}
		sessions, err := s.attendanceRepo.ListByEmployeeMonth(ctx, record.EmployeeID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions for %s: %w", record.EmployeeID, err)
		}

		record.BaseSalary = emp.BaseSalary
		record.ValidWorkDays = ValidWorkDays(completedDays, leaves, year, month)
		record.StandardWorkDays = cfg.StandardWorkDays
		record.OvertimeAmount = sumOvertimePay(sessions)

		breakdown := ComputeSalary(salaryInput(emp, record), cfg)
		record.NetPay = breakdown.TotalNet.Add(record.OvertimeAmount).Add(record.Bonus)

		// Amounts are rewritten on every record, CONFIRMED ones included;
		// only PENDING_CALC and DISPUTED move back to awaiting confirmation.
		// A confirmed slip therefore keeps its confirmation even when its
		// net pay changes. Intentionally preserved behavior; see DESIGN.md.
		if record.Status == payroll.StatusPendingCalc || record.Status == payroll.StatusDisputed {
			record.Status = payroll.StatusWaitingConfirmation
		}

		if err := s.payrollRepo.UpdateRecord(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update payroll record %s: %w", record.ID, err)
		}
		updated = append(updated, record)
	}

	return mapToRecordResponses(updated), nil
}

func (s *PayrollServiceImpl) LockCycle(ctx context.Context, cycleID string) (payroll.LockCycleResponse, error) {
	mu := s.cycleMutex(cycleID)
	mu.Lock()
	defer mu.Unlock()

	records, err := s.payrollRepo.ListRecordsByCycle(ctx, cycleID)
	if err != nil {
		return payroll.LockCycleResponse{}, fmt.Errorf("failed to list cycle records: %w", err)
	}
	if len(records) == 0 {
		return payroll.LockCycleResponse{}, payroll.ErrCycleNotFound
	}

	blocking := 0
	for _, record := range records {
		if record.Status != payroll.StatusConfirmed && record.Status != payroll.StatusPaid {
			blocking++
		}
	}
	if blocking > 0 {
		return payroll.LockCycleResponse{}, &payroll.CycleLockError{CycleID: cycleID, Blocking: blocking}
	}

	paid, err := s.payrollRepo.MarkCyclePaid(ctx, cycleID)
	if err != nil {
		return payroll.LockCycleResponse{}, fmt.Errorf("failed to mark cycle paid: %w", err)
	}

	return payroll.LockCycleResponse{CycleID: cycleID, RecordsPaid: paid}, nil
}

func (s *PayrollServiceImpl) ListCycles(ctx context.Context) ([]string, error) {
	return s.payrollRepo.ListCycles(ctx)
}

func (s *PayrollServiceImpl) ListCycleRecords(ctx context.Context, cycleID string) ([]payroll.RecordResponse, error) {
	records, err := s.payrollRepo.ListRecordsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, payroll.ErrCycleNotFound
	}
	return mapToRecordResponses(records), nil
}

func (s *PayrollServiceImpl) CycleSummary(ctx context.Context, cycleID string) (payroll.CycleSummaryResponse, error) {
	records, err := s.payrollRepo.ListRecordsByCycle(ctx, cycleID)
	if err != nil {
		return payroll.CycleSummaryResponse{}, err
	}
	if len(records) == 0 {
		return payroll.CycleSummaryResponse{}, payroll.ErrCycleNotFound
	}

	summary := payroll.CycleSummaryResponse{
		CycleID:       cycleID,
		TotalRecords:  len(records),
		TotalNetPay:   decimal.Zero,
		CountByStatus: make(map[string]int),
	}
	for _, record := range records {
		summary.TotalNetPay = summary.TotalNetPay.Add(record.NetPay)
		summary.CountByStatus[string(record.Status)]++
		if record.Status == payroll.StatusConfirmed || record.Status == payroll.StatusPaid {
			summary.ConfirmedCount++
		}
	}
	return summary, nil
}

func (s *PayrollServiceImpl) ExportCycleCSV(ctx context.Context, cycleID string, w io.Writer) error {
	records, err := s.payrollRepo.ListRecordsByCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return payroll.ErrCycleNotFound
	}

	cw := csv.NewWriter(w)
	header := []string{
		"employee_id", "employee_name", "cycle_id", "base_salary",
		"overtime_amount", "allowance", "bonus", "kpi_bonus", "deduction",
		"sales_achieved", "sales_target", "valid_work_days", "net_pay", "status",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		row := []string{
			r.EmployeeID, name, r.CycleID, r.BaseSalary.String(),
			r.OvertimeAmount.String(), r.Allowance.String(), r.Bonus.String(),
			r.KPIBonus.String(), r.Deduction.String(),
			r.SalesAchieved.String(), r.SalesTarget.String(),
			fmt.Sprintf("%d", r.ValidWorkDays), r.NetPay.String(), string(r.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ========== RECORD OPERATIONS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to load employee %s: %w", record.EmployeeID, err)
	}

	cfg, err := s.policyRepo.GetPolicyConfig(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to load policy config: %w", err)
	}
	cfg.Normalize()

	return payroll.PayslipResponse{
		Record:    mapToRecordResponse(record),
		Breakdown: ComputeSalary(salaryInput(emp, record), cfg),
	}, nil
}

func (s *PayrollServiceImpl) UpdateMetrics(ctx context.Context, req payroll.UpdateMetricsRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.Status == payroll.StatusPaid {
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyPaid
	}

	if req.Allowance != nil {
		record.Allowance = *req.Allowance
	}
	if req.Bonus != nil {
		record.Bonus = *req.Bonus
	}
	if req.KPIBonus != nil {
		record.KPIBonus = *req.KPIBonus
	}
	if req.Deduction != nil {
		record.Deduction = *req.Deduction
	}
	if req.SalesAchieved != nil {
		record.SalesAchieved = *req.SalesAchieved
	}
	if req.SalesTarget != nil {
		record.SalesTarget = *req.SalesTarget
	}

	if err := s.payrollRepo.UpdateRecord(ctx, record); err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ConfirmRecord(ctx context.Context, id, employeeID string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if employeeID != "" && record.EmployeeID != employeeID {
		return payroll.RecordResponse{}, payroll.ErrNotRecordOwner
	}

	switch record.Status {
	case payroll.StatusPaid:
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyPaid
	case payroll.StatusConfirmed:
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyConfirmed
	case payroll.StatusWaitingConfirmation:
		// fallthrough to confirm
	default:
		return payroll.RecordResponse{}, payroll.ErrRecordNotConfirmable
	}

	now := time.Now().UTC()
	record.Status = payroll.StatusConfirmed
	record.ConfirmedAt = &now

	if err := s.payrollRepo.UpdateRecord(ctx, record); err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) DisputeRecord(ctx context.Context, req payroll.DisputeRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if req.EmployeeID != "" && record.EmployeeID != req.EmployeeID {
		return payroll.RecordResponse{}, payroll.ErrNotRecordOwner
	}

	// Feedback is accepted any time the slip is neither paid nor already
	// confirmed.
	switch record.Status {
	case payroll.StatusPaid:
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyPaid
	case payroll.StatusConfirmed:
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyConfirmed
	}

	feedback := payroll.Feedback{
		ID:        uuid.NewString(),
		RecordID:  record.ID,
		Content:   req.Content,
		Status:    payroll.FeedbackStatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.payrollRepo.AddFeedback(ctx, feedback)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to add feedback: %w", err)
	}

	record.Status = payroll.StatusDisputed
	record.Feedback = append(record.Feedback, created)
	if err := s.payrollRepo.UpdateRecord(ctx, record); err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ResolveFeedback(ctx context.Context, req payroll.ResolveFeedbackRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.Status == payroll.StatusPaid {
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyPaid
	}

	feedback, err := s.payrollRepo.GetFeedbackByID(ctx, req.RecordID, req.FeedbackID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if feedback.Status == payroll.FeedbackStatusResolved {
		return payroll.RecordResponse{}, payroll.ErrFeedbackAlreadyResolved
	}

	feedback.Response = &req.Response
	feedback.Status = payroll.FeedbackStatusResolved
	if err := s.payrollRepo.UpdateFeedback(ctx, feedback); err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to update feedback: %w", err)
	}

	// The employee must re-confirm after resolution; no auto-confirm.
	record.Status = payroll.StatusWaitingConfirmation
	if err := s.payrollRepo.UpdateRecord(ctx, record); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err = s.payrollRepo.GetRecordByID(ctx, req.RecordID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

// ========== HELPERS ==========

func sumOvertimePay(sessions []attendance.Session) decimal.Decimal {
	total := decimal.Zero
	for _, session := range sessions {
		if session.Status != attendance.SessionStatusCompleted {
			continue
		}
		total = total.Add(session.OvertimePay)
	}
	return total
}

func salaryInput(emp employee.Employee, record payroll.Record) payroll.SalaryInput {
	return payroll.SalaryInput{
		BaseSalary:          emp.BaseSalary,
		InsuranceSalary:     emp.InsuranceSalary,
		RoleTitle:           emp.RoleTitle,
		ProRateByAttendance: true,
		ValidWorkDays:       record.ValidWorkDays,
		StandardWorkDays:    record.StandardWorkDays,
		SalesAchieved:       record.SalesAchieved,
		SalesTarget:         record.SalesTarget,
		ManualAllowance:     record.Allowance,
		ManualDeduction:     record.Deduction,
		KPIBonus:            record.KPIBonus,
	}
}

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	var confirmedAtStr *string
	if r.ConfirmedAt != nil {
		str := r.ConfirmedAt.Format(time.RFC3339)
		confirmedAtStr = &str
	}

	employeeName := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}

	feedback := make([]payroll.FeedbackResponse, 0, len(r.Feedback))
	for _, f := range r.Feedback {
		feedback = append(feedback, payroll.FeedbackResponse{
			ID:        f.ID,
			Content:   f.Content,
			Response:  f.Response,
			Status:    string(f.Status),
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}

	return payroll.RecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     employeeName,
		CycleID:          r.CycleID,
		BaseSalary:       r.BaseSalary,
		OvertimeAmount:   r.OvertimeAmount,
		Allowance:        r.Allowance,
		Bonus:            r.Bonus,
		KPIBonus:         r.KPIBonus,
		Deduction:        r.Deduction,
		SalesAchieved:    r.SalesAchieved,
		SalesTarget:      r.SalesTarget,
		ValidWorkDays:    r.ValidWorkDays,
		StandardWorkDays: r.StandardWorkDays,
		NetPay:           r.NetPay,
		Status:           string(r.Status),
		ConfirmedAt:      confirmedAtStr,
		Feedback:         feedback,
	}
}

func mapToRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	result := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
