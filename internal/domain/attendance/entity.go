package attendance

import (
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionStatusOpen      SessionStatus = "OPEN"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// Session - one check-in/check-out pair for one employee on one date.
// Minute and pay figures are derived by the shift engine at check-out and
// immutable afterwards except through administrative correction.
type Session struct {
	ID         string
	EmployeeID string
	Date       time.Time // work day, truncated to midnight
	CheckIn    time.Time
	CheckOut   *time.Time
	DayType    shift.DayType
	Status     SessionStatus

	TotalMinutes    int
	RegularMinutes  int
	OvertimeMinutes int
	NightBonus      decimal.Decimal
	OvertimePay     decimal.Decimal
	TotalPay        decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftConfig is the window set and holiday calendar sessions are accounted
// against. Read-only configuration, loaded per calculation call.
type ShiftConfig struct {
	Windows  []shift.Window
	Holidays []time.Time // calendar days
}

// DayTypeFor classifies a calendar day: configured holidays win over the
// Saturday/Sunday weekend rule.
func (c ShiftConfig) DayTypeFor(date time.Time) shift.DayType {
	for _, h := range c.Holidays {
		if h.Year() == date.Year() && h.YearDay() == date.YearDay() {
			return shift.DayTypeHoliday
		}
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return shift.DayTypeWeekend
	}
	return shift.DayTypeWorkday
}
