package payroll

import (
	"testing"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approvedLeave(t leave.Type, start, end time.Time) leave.Request {
	return leave.Request{
		Type:      t,
		Status:    leave.RequestStatusApproved,
		StartDate: start,
		EndDate:   end,
	}
}

func TestCountLeaveDaysInMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"fully inside", day(2025, 4, 7), day(2025, 4, 9), 3},
		{"single day", day(2025, 4, 15), day(2025, 4, 15), 1},
		{"spans start of month", day(2025, 3, 28), day(2025, 4, 5), 5},
		{"spans end of month", day(2025, 4, 28), day(2025, 5, 3), 3},
		{"covers whole month", day(2025, 3, 1), day(2025, 5, 31), 30},
		{"entirely before", day(2025, 3, 1), day(2025, 3, 31), 0},
		{"entirely after", day(2025, 5, 1), day(2025, 5, 2), 0},
	}

	for _, tc := range cases {
		req := approvedLeave(leave.TypeAnnual, tc.start, tc.end)
		assert.Equal(t, tc.want, CountLeaveDaysInMonth(req, 2025, time.April), tc.name)
	}
}

func TestValidWorkDays_FiltersLeaveTypeAndStatus(t *testing.T) {
	t.Parallel()

	pendingAnnual := approvedLeave(leave.TypeAnnual, day(2025, 4, 7), day(2025, 4, 8))
	pendingAnnual.Status = leave.RequestStatusPending

	leaves := []leave.Request{
		approvedLeave(leave.TypeAnnual, day(2025, 4, 1), day(2025, 4, 2)), // 2 days
		approvedLeave(leave.TypeSick, day(2025, 4, 10), day(2025, 4, 10)), // 1 day
		approvedLeave(leave.TypeUnpaid, day(2025, 4, 14), day(2025, 4, 18)),
		pendingAnnual,
	}

	assert.Equal(t, 18+3, ValidWorkDays(18, leaves, 2025, time.April))
}

// A day covered by both a completed session and an approved leave range is
// counted twice. The sum is additive with no de-duplication; this test pins
// that behavior so any future change is deliberate.
func TestValidWorkDays_LeaveOverlapDoubleCounts(t *testing.T) {
	t.Parallel()

	// 20 completed sessions, and a 5-day leave fully inside the same month;
	// even if the employee clocked in on those leave days the total is 25.
	leaves := []leave.Request{
		approvedLeave(leave.TypeAnnual, day(2025, 4, 7), day(2025, 4, 11)),
	}

	assert.Equal(t, 25, ValidWorkDays(20, leaves, 2025, time.April))
}
