// Package shift implements the shift-based time accounting engine.
//
// A check-in/check-out pair is evaluated against every configured window
// independently. Overlapping windows each contribute their own minutes and
// pay; the engine does not de-duplicate between windows, so operators are
// expected to configure non-overlapping windows.
package shift

import (
	"strconv"
	"strings"
	"time"

	"github.com/hoangson-hr/payday-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DayType classifies the calendar day a session belongs to.
type DayType string

const (
	DayTypeWorkday DayType = "WORKDAY"
	DayTypeWeekend DayType = "WEEKEND"
	DayTypeHoliday DayType = "HOLIDAY"
)

// RoundingMode controls how computed minutes snap to a window's rounding step.
type RoundingMode string

const (
	RoundUp      RoundingMode = "up"
	RoundDown    RoundingMode = "down"
	RoundNearest RoundingMode = "nearest"
)

// Window is a named recurring time window within a day. Start and End are
// 24h "HH:mm" clock times; End <= Start means the window runs into the next
// calendar day.
type Window struct {
	Name                   string
	Start                  string
	End                    string
	StandardMinutes        int
	OvertimeMultiplier     decimal.Decimal
	IsNight                bool
	NightBonus             decimal.Decimal
	GraceLateMinutes       int
	GraceEarlyLeaveMinutes int
	RoundingStep           int
	RoundingMode           RoundingMode
	BreakMinutes           int
}

func (w Window) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(w.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidClockTime(w.Start) {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be a valid HH:mm clock time"})
	}
	if !validator.IsValidClockTime(w.End) {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be a valid HH:mm clock time"})
	}
	if w.StandardMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_minutes", Message: "must be non-negative"})
	}
	if w.OvertimeMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be non-negative"})
	}
	if w.RoundingStep < 0 {
		errs = append(errs, validator.ValidationError{Field: "rounding_step", Message: "must be non-negative"})
	}
	switch w.RoundingMode {
	case "", RoundUp, RoundDown, RoundNearest:
	default:
		errs = append(errs, validator.ValidationError{Field: "rounding_mode", Message: "must be 'up', 'down' or 'nearest'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// materialize resolves the window to concrete instants on baseDate. An
// overnight window gets its end pushed to the following day.
func (w Window) materialize(baseDate time.Time) (start, end time.Time) {
	startH, startM := mustParseClock(w.Start)
	endH, endM := mustParseClock(w.End)

	start = time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), startH, startM, 0, 0, baseDate.Location())
	end = time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), endH, endM, 0, 0, baseDate.Location())
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// ParseClock parses a 24h "HH:mm" clock time.
func ParseClock(s string) (hour, minute int, err error) {
	if !validator.IsValidClockTime(s) {
		return 0, 0, ErrInvalidClockTime
	}
	parts := strings.SplitN(s, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute, nil
}

// mustParseClock is for windows that already passed Validate; a malformed
// time degrades to midnight instead of panicking mid-calculation.
func mustParseClock(s string) (hour, minute int) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return 0, 0
	}
	return hour, minute
}
