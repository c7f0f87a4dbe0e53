package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/employee"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[string]attendance.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]attendance.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session attendance.Session) (attendance.Session, error) {
	r.sessions[session.ID] = session
	return session, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (attendance.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) GetOpenByEmployeeDate(_ context.Context, employeeID string, date time.Time) (attendance.Session, error) {
	for _, session := range r.sessions {
		if session.EmployeeID == employeeID && session.Date.Equal(date) && session.Status == attendance.SessionStatusOpen {
			return session, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (r *fakeSessionRepo) Update(_ context.Context, session attendance.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) ListByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.Session, error) {
	var result []attendance.Session
	for _, session := range r.sessions {
		if session.EmployeeID == employeeID && session.Date.Year() == year && session.Date.Month() == month {
			result = append(result, session)
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) CountCompletedInMonth(_ context.Context, employeeID string, year int, month time.Month) (int, error) {
	count := 0
	for _, session := range r.sessions {
		if session.EmployeeID == employeeID && session.Date.Year() == year &&
			session.Date.Month() == month && session.Status == attendance.SessionStatusCompleted {
			count++
		}
	}
	return count, nil
}

type fakeShiftConfigRepo struct {
	cfg attendance.ShiftConfig
}

func (r *fakeShiftConfigRepo) GetShiftConfig(_ context.Context) (attendance.ShiftConfig, error) {
	return r.cfg, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) ListPayable(_ context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range r.employees {
		if emp.Payable() {
			result = append(result, emp)
		}
	}
	return result, nil
}

func newTestService() (attendance.Service, *fakeSessionRepo) {
	repo := newFakeSessionRepo()
	cfgRepo := &fakeShiftConfigRepo{cfg: attendance.ShiftConfig{
		Windows: []shift.Window{{
			Name:               "day",
			Start:              "08:00",
			End:                "17:00",
			StandardMinutes:    480,
			OvertimeMultiplier: decimal.NewFromFloat(1.5),
			BreakMinutes:       60,
		}},
	}}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:         "emp-1",
			FullName:   "An Nguyen",
			Status:     employee.StatusActive,
			HourlyRate: decimal.NewFromInt(50_000),
		},
	}}
	return NewAttendanceService(repo, cfgRepo, empRepo), repo
}

func TestCheckIn_OpensSessionOncePerDay(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.SessionStatusOpen), first.Status)
	assert.NotEmpty(t, first.ID)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_RequiresOpenSession(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestCheckInThenOut_CompletesAndPrices(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()
	ctx := context.Background()

	opened, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	closed, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, opened.ID, closed.ID)
	assert.Equal(t, string(attendance.SessionStatusCompleted), closed.Status)
	require.NotNil(t, closed.CheckOut)

	stored, err := repo.GetByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.SessionStatusCompleted, stored.Status)
}

func TestCorrectSession_RerunsAccounting(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()
	ctx := context.Background()

	// 2025-04-14 is a Monday.
	date := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	repo.sessions["sess-1"] = attendance.Session{
		ID:         "sess-1",
		EmployeeID: "emp-1",
		Date:       date,
		CheckIn:    date.Add(9 * time.Hour),
		DayType:    shift.DayTypeWorkday,
		Status:     attendance.SessionStatusOpen,
	}

	result, err := svc.CorrectSession(ctx, attendance.CorrectSessionRequest{
		SessionID: "sess-1",
		CheckIn:   "2025-04-14T08:00:00Z",
		CheckOut:  "2025-04-14T17:00:00Z",
	})
	require.NoError(t, err)

	// 540 minutes in the window, minus the 60 minute break, all regular.
	assert.Equal(t, string(attendance.SessionStatusCompleted), result.Status)
	assert.Equal(t, 480, result.TotalMinutes)
	assert.Equal(t, 480, result.RegularMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
	assert.True(t, result.TotalPay.Equal(decimal.NewFromInt(400_000)), result.TotalPay.String())
	require.Len(t, result.Windows, 1)
}

func TestCorrectSession_RejectsBadTimestamps(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()
	repo.sessions["sess-1"] = attendance.Session{
		ID:         "sess-1",
		EmployeeID: "emp-1",
		Status:     attendance.SessionStatusOpen,
	}

	_, err := svc.CorrectSession(context.Background(), attendance.CorrectSessionRequest{
		SessionID: "sess-1",
		CheckIn:   "not-a-timestamp",
		CheckOut:  "2025-04-14T17:00:00Z",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "check_in")
}

func TestGetSession_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
}
