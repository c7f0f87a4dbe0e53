package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/attendance"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/employee"
	"github.com/hoangson-hr/payday-backend-go/internal/domain/shift"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendanceRepo  attendance.Repository
	shiftConfigRepo attendance.ShiftConfigRepository
	employeeRepo    employee.Repository
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	shiftConfigRepo attendance.ShiftConfigRepository,
	employeeRepo employee.Repository,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo:  attendanceRepo,
		shiftConfigRepo: shiftConfigRepo,
		employeeRepo:    employeeRepo,
	}
}

func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.SessionResponse, error) {
	now := time.Now().UTC()
	date := now.Truncate(24 * time.Hour)

	_, err := a.attendanceRepo.GetOpenByEmployeeDate(ctx, req.EmployeeID, date)
	if err == nil {
		return attendance.SessionResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrSessionNotFound) {
		return attendance.SessionResponse{}, fmt.Errorf("failed to check for open session: %w", err)
	}

	cfg, err := a.shiftConfigRepo.GetShiftConfig(ctx)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to load shift config: %w", err)
	}

	// The day classification is fixed at check-in from the holiday calendar.
	session := attendance.Session{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		Date:        date,
		CheckIn:     now,
		DayType:     cfg.DayTypeFor(date),
		Status:      attendance.SessionStatusOpen,
		NightBonus:  decimal.Zero,
		OvertimePay: decimal.Zero,
		TotalPay:    decimal.Zero,
	}

	created, err := a.attendanceRepo.Create(ctx, session)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return mapToSessionResponse(created, nil), nil
}

func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.SessionResponse, error) {
	now := time.Now().UTC()
	date := now.Truncate(24 * time.Hour)

	session, err := a.attendanceRepo.GetOpenByEmployeeDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.SessionResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to find open session: %w", err)
	}

	session.CheckOut = &now
	result, err := a.account(ctx, &session)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if err := a.attendanceRepo.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to update attendance session: %w", err)
	}

	return mapToSessionResponse(session, result.Windows), nil
}

func (a *AttendanceServiceImpl) CorrectSession(ctx context.Context, req attendance.CorrectSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		return attendance.SessionResponse{}, validator.ValidationErrors{
			{Field: "check_in", Message: "must be an RFC 3339 timestamp"},
		}
	}
	checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
	if err != nil {
		return attendance.SessionResponse{}, validator.ValidationErrors{
			{Field: "check_out", Message: "must be an RFC 3339 timestamp"},
		}
	}

	session, err := a.attendanceRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session.CheckIn = checkIn.UTC()
	out := checkOut.UTC()
	session.CheckOut = &out

	result, err := a.account(ctx, &session)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if err := a.attendanceRepo.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to update attendance session: %w", err)
	}

	return mapToSessionResponse(session, result.Windows), nil
}

func (a *AttendanceServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionResponse, error) {
	session, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return mapToSessionResponse(session, nil), nil
}

// account runs the shift engine for a session with both timestamps present
// and stores the derived figures on it.
func (a *AttendanceServiceImpl) account(ctx context.Context, session *attendance.Session) (shift.Result, error) {
	if session.CheckOut == nil {
		return shift.Result{}, attendance.ErrSessionNotComplete
	}

	cfg, err := a.shiftConfigRepo.GetShiftConfig(ctx)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to load shift config: %w", err)
	}
	emp, err := a.employeeRepo.GetByID(ctx, session.EmployeeID)
	if err != nil {
		return shift.Result{}, fmt.Errorf("failed to load employee %s: %w", session.EmployeeID, err)
	}

	result := shift.Compute(shift.Input{
		CheckIn:    session.CheckIn,
		CheckOut:   *session.CheckOut,
		BaseDate:   session.Date,
		DayType:    session.DayType,
		HourlyRate: emp.HourlyRate,
		Windows:    cfg.Windows,
	})

	session.Status = attendance.SessionStatusCompleted
	session.TotalMinutes = result.TotalMinutes
	session.RegularMinutes = result.RegularMinutes
	session.OvertimeMinutes = result.OvertimeMinutes
	session.NightBonus = result.NightBonus
	session.OvertimePay = result.OvertimePay
	session.TotalPay = result.TotalPay

	return result, nil
}

func mapToSessionResponse(s attendance.Session, windows []shift.WindowResult) attendance.SessionResponse {
	var checkOutStr *string
	if s.CheckOut != nil {
		str := s.CheckOut.Format(time.RFC3339)
		checkOutStr = &str
	}

	return attendance.SessionResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		Date:            s.Date.Format("2006-01-02"),
		CheckIn:         s.CheckIn.Format(time.RFC3339),
		CheckOut:        checkOutStr,
		DayType:         string(s.DayType),
		Status:          string(s.Status),
		TotalMinutes:    s.TotalMinutes,
		RegularMinutes:  s.RegularMinutes,
		OvertimeMinutes: s.OvertimeMinutes,
		NightBonus:      s.NightBonus,
		OvertimePay:     s.OvertimePay,
		TotalPay:        s.TotalPay,
		Windows:         windows,
	}
}
