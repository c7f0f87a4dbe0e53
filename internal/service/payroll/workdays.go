package payroll

import (
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/leave"
)

// CountLeaveDaysInMonth returns the inclusive day count of the intersection
// between the leave range and the given month. Ranges are clamped to the
// month boundaries; a range entirely outside the month counts zero.
func CountLeaveDaysInMonth(req leave.Request, year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := dateOnly(req.StartDate)
	end := dateOnly(req.EndDate)

	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// ValidWorkDays is the pro-ration numerator for one employee and month:
// completed attendance days plus approved payable leave days. A day covered
// by both a completed session and a leave range is counted twice; the sum
// stays additive on purpose and any de-duplication would be a behavior
// change.
func ValidWorkDays(completedDays int, leaves []leave.Request, year int, month time.Month) int {
	days := completedDays
	for _, req := range leaves {
		if req.Status != leave.RequestStatusApproved || !req.Type.Payable() {
			continue
		}
		days += CountLeaveDaysInMonth(req, year, month)
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
