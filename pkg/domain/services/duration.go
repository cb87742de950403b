package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/eventquote/pkg/domain/entities"
)

const minutesPerDay = 24 * 60

var (
	sixty = decimal.NewFromInt(60)
	two   = decimal.NewFromInt(2)
)

// DayHours is the billable hours of one configured day
type DayHours struct {
	Date  string
	Hours decimal.Decimal
}

// Duration is the outcome of a duration calculation
type Duration struct {
	TotalHours decimal.Decimal
	Days       []DayHours
	MultiDay   bool
}

// IsZero reports whether the window could not be priced yet
func (d Duration) IsZero() bool {
	return d.TotalHours.IsZero()
}

// DurationCalculator derives billable hours from an event window
type DurationCalculator struct {
	minimumHours decimal.Decimal
}

// NewDurationCalculator creates a calculator with the half-hour minimum
func NewDurationCalculator() *DurationCalculator {
	return NewDurationCalculatorWithMinimum(decimal.NewFromFloat(0.5))
}

// NewDurationCalculatorWithMinimum creates a calculator with a custom minimum billable duration
func NewDurationCalculatorWithMinimum(minimumHours decimal.Decimal) *DurationCalculator {
	return &DurationCalculator{minimumHours: minimumHours}
}

// Calculate converts the window into billable hours. Missing dates or times
// yield a zero Duration rather than an error.
func (c *DurationCalculator) Calculate(window entities.EventWindow) Duration {
	if window.StartDate == "" {
		return Duration{TotalHours: decimal.Zero}
	}
	if window.EndDate != "" && window.IsMultiDay() {
		return c.multiDay(window)
	}
	return c.singleDay(window)
}

// EventHours is a shorthand for Calculate(window).TotalHours
func (c *DurationCalculator) EventHours(window entities.EventWindow) decimal.Decimal {
	return c.Calculate(window).TotalHours
}

func (c *DurationCalculator) singleDay(window entities.EventWindow) Duration {
	hours, ok := c.dayHours(window.StartTime, window.EndTime)
	if !ok {
		return Duration{TotalHours: decimal.Zero}
	}
	hours = decimal.Max(c.minimumHours, RoundToHalfHour(hours))
	return Duration{
		TotalHours: hours,
		Days:       []DayHours{{Date: window.StartDate, Hours: hours}},
	}
}

// multiDay sums every configured day and rounds only the grand total, so that
// 12h + 12h + 1h stays 25h.
func (c *DurationCalculator) multiDay(window entities.EventWindow) Duration {
	total := decimal.Zero
	days := make([]DayHours, 0, len(window.DailySchedules))

	for _, schedule := range window.DailySchedules {
		if !schedule.IsConfigured() {
			continue
		}
		hours, ok := c.dayHours(schedule.StartTime, schedule.EndTime)
		if !ok {
			continue
		}
		days = append(days, DayHours{Date: schedule.Date, Hours: hours})
		total = total.Add(hours)
	}

	if len(days) == 0 {
		return Duration{TotalHours: decimal.Zero, MultiDay: true}
	}

	return Duration{
		TotalHours: RoundToHalfHour(total),
		Days:       days,
		MultiDay:   true,
	}
}

// dayHours returns the unrounded hours between two clock times, wrapping past
// midnight and floored at the minimum
func (c *DurationCalculator) dayHours(startTime, endTime string) (decimal.Decimal, bool) {
	start, err := entities.ParseClock(startTime)
	if err != nil {
		return decimal.Zero, false
	}
	end, err := entities.ParseClock(endTime)
	if err != nil {
		return decimal.Zero, false
	}

	minutes := end - start
	if minutes < 0 {
		minutes += minutesPerDay
	}

	hours := decimal.NewFromInt(int64(minutes)).Div(sixty)
	return decimal.Max(c.minimumHours, hours), true
}

// RoundToHalfHour rounds hours to the nearest half hour, ties away from zero
func RoundToHalfHour(hours decimal.Decimal) decimal.Decimal {
	return hours.Mul(two).Round(0).Div(two)
}
