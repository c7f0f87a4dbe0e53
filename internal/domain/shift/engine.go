package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// weekend and holiday minutes are paid at a fixed double rate regardless of
// the window's configured multiplier.
var nonWorkdayMultiplier = decimal.NewFromInt(2)

var sixty = decimal.NewFromInt(60)

// Input is one check-in/check-out pair to account against a window set.
type Input struct {
	CheckIn    time.Time
	CheckOut   time.Time
	BaseDate   time.Time
	DayType    DayType
	HourlyRate decimal.Decimal
	Windows    []Window
}

// WindowResult is the per-window breakdown. Pay figures are rounded half-up
// to the whole currency unit at the window level; aggregates are sums of the
// rounded per-window figures.
type WindowResult struct {
	Name            string          `json:"name"`
	ActualMinutes   int             `json:"actual_minutes"`
	RegularMinutes  int             `json:"regular_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	NightBonus      decimal.Decimal `json:"night_bonus"`
	RegularPay      decimal.Decimal `json:"regular_pay"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	TotalPay        decimal.Decimal `json:"total_pay"`
}

// Result aggregates the per-window breakdowns, preserving window order.
type Result struct {
	Windows         []WindowResult  `json:"windows"`
	TotalMinutes    int             `json:"total_minutes"`
	RegularMinutes  int             `json:"regular_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	NightBonus      decimal.Decimal `json:"night_bonus"`
	RegularPay      decimal.Decimal `json:"regular_pay"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	TotalPay        decimal.Decimal `json:"total_pay"`
}

// Compute runs the time-accounting algorithm for one session. It is a pure
// function and never fails: a check-out at or before check-in simply yields
// zero minutes for every window.
func Compute(in Input) Result {
	result := Result{
		Windows:     make([]WindowResult, 0, len(in.Windows)),
		NightBonus:  decimal.Zero,
		RegularPay:  decimal.Zero,
		OvertimePay: decimal.Zero,
		TotalPay:    decimal.Zero,
	}

	for _, w := range in.Windows {
		wr := computeWindow(in, w)
		result.Windows = append(result.Windows, wr)

		result.TotalMinutes += wr.ActualMinutes
		result.RegularMinutes += wr.RegularMinutes
		result.OvertimeMinutes += wr.OvertimeMinutes
		result.NightBonus = result.NightBonus.Add(wr.NightBonus)
		result.RegularPay = result.RegularPay.Add(wr.RegularPay)
		result.OvertimePay = result.OvertimePay.Add(wr.OvertimePay)
		result.TotalPay = result.TotalPay.Add(wr.TotalPay)
	}

	return result
}

func computeWindow(in Input, w Window) WindowResult {
	wr := WindowResult{
		Name:        w.Name,
		NightBonus:  decimal.Zero,
		RegularPay:  decimal.Zero,
		OvertimePay: decimal.Zero,
		TotalPay:    decimal.Zero,
	}

	windowStart, windowEnd := w.materialize(in.BaseDate)

	minutes := overlapMinutes(in.CheckIn, in.CheckOut, windowStart, windowEnd)
	if minutes <= 0 {
		return wr
	}

	// Unpaid break comes off the raw overlap, before grace and rounding.
	if minutes > w.BreakMinutes {
		minutes -= w.BreakMinutes
	}

	// Lateness within the grace window is forgiven; the excess is deducted
	// from payable minutes on top of the overlap already lost. Same rule for
	// leaving before the window end.
	if lateness := wholeMinutes(in.CheckIn.Sub(windowStart)); lateness > 0 {
		minutes -= max(0, lateness-w.GraceLateMinutes)
	}
	if earlyLeave := wholeMinutes(windowEnd.Sub(in.CheckOut)); earlyLeave > 0 {
		minutes -= max(0, earlyLeave-w.GraceEarlyLeaveMinutes)
	}
	if minutes < 0 {
		minutes = 0
	}

	minutes = roundMinutes(minutes, w.RoundingStep, w.RoundingMode)
	wr.ActualMinutes = minutes

	// Weekend and holiday work is all overtime, whatever the standard ceiling.
	otMultiplier := w.OvertimeMultiplier
	if in.DayType == DayTypeWorkday {
		wr.RegularMinutes = min(minutes, w.StandardMinutes)
		wr.OvertimeMinutes = minutes - wr.RegularMinutes
	} else {
		wr.OvertimeMinutes = minutes
		otMultiplier = nonWorkdayMultiplier
	}

	if w.IsNight && minutes > 0 {
		wr.NightBonus = w.NightBonus
	}

	wr.RegularPay = minutePay(wr.RegularMinutes, in.HourlyRate)
	wr.OvertimePay = minutePay(wr.OvertimeMinutes, in.HourlyRate.Mul(otMultiplier))
	wr.TotalPay = wr.RegularPay.Add(wr.OvertimePay).Add(wr.NightBonus)

	return wr
}

// overlapMinutes is the length of the intersection of [from, to] and
// [start, end] in whole minutes, floored at zero.
func overlapMinutes(from, to, start, end time.Time) int {
	if from.Before(start) {
		from = start
	}
	if to.After(end) {
		to = end
	}
	if !to.After(from) {
		return 0
	}
	return wholeMinutes(to.Sub(from))
}

func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

func roundMinutes(minutes, step int, mode RoundingMode) int {
	if step <= 1 {
		return minutes
	}
	switch mode {
	case RoundUp:
		return ((minutes + step - 1) / step) * step
	case RoundDown:
		return (minutes / step) * step
	case RoundNearest:
		return ((minutes + step/2) / step) * step
	default:
		return minutes
	}
}

// minutePay converts minutes at an hourly rate to a whole-unit amount,
// rounding half-up.
func minutePay(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Mul(hourlyRate).Round(0)
}
