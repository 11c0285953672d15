package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"go-hrms/internal/config"
)

type measured struct {
	overtime decimal.Decimal
	delayed  decimal.Decimal
	earlyOut decimal.Decimal
}

// measure compares the clock times of day against the shift. Delay is only
// counted once it exceeds the grace period, and then from shift start.
func measure(shift config.ShiftPolicy, day time.Time, clockIn time.Time, clockOut *time.Time) measured {
	start := day.Add(shift.Start)
	end := day.Add(shift.End)

	m := measured{overtime: decimal.Zero, delayed: decimal.Zero, earlyOut: decimal.Zero}
	if clockIn.After(start.Add(shift.Grace)) {
		m.delayed = hours(clockIn.Sub(start))
	}
	if clockOut == nil {
		return m
	}
	if clockOut.Before(end) {
		m.earlyOut = hours(end.Sub(*clockOut))
	}
	if clockOut.After(end) {
		m.overtime = hours(clockOut.Sub(end))
	}
	return m
}

func hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Minute)).Div(decimal.NewFromInt(60)).Round(2)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
