package entities

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the layout used for event dates
	DateLayout = "2006-01-02"
	// ClockLayout is the layout used for start and end times
	ClockLayout = "15:04"
)

// DailySchedule holds the working hours of one day of a multi-day event
type DailySchedule struct {
	Date      string
	StartTime string
	EndTime   string
}

// IsConfigured reports whether both times of the day are present
func (d DailySchedule) IsConfigured() bool {
	return d.StartTime != "" && d.EndTime != ""
}

// EventWindow describes when an event takes place. Single-day events use
// StartTime/EndTime; multi-day events use one DailySchedule per day.
type EventWindow struct {
	StartDate      string
	EndDate        string
	StartTime      string
	EndTime        string
	DailySchedules []DailySchedule
}

// IsMultiDay reports whether the window spans more than one calendar day.
// Unparseable dates are treated as single-day.
func (w EventWindow) IsMultiDay() bool {
	start, err := ParseDate(w.StartDate)
	if err != nil {
		return false
	}
	end, err := ParseDate(w.EndDate)
	if err != nil {
		return false
	}
	return end.After(start)
}

// Days returns the number of calendar days covered by the window, 0 when the
// dates are missing or inverted
func (w EventWindow) Days() int {
	start, err := ParseDate(w.StartDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(w.EndDate)
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Check returns every invariant violation of the window
func (w EventWindow) Check() []string {
	var problems []string

	start, startErr := ParseDate(w.StartDate)
	end, endErr := ParseDate(w.EndDate)
	if w.StartDate != "" && startErr != nil {
		problems = append(problems, fmt.Sprintf("invalid start date %q", w.StartDate))
	}
	if w.EndDate != "" && endErr != nil {
		problems = append(problems, fmt.Sprintf("invalid end date %q", w.EndDate))
	}
	if startErr != nil || endErr != nil {
		return problems
	}
	if end.Before(start) {
		problems = append(problems, fmt.Sprintf("end date %s cannot be before start date %s", w.EndDate, w.StartDate))
		return problems
	}

	for _, day := range w.DailySchedules {
		date, err := ParseDate(day.Date)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid schedule date %q", day.Date))
			continue
		}
		if date.Before(start) || date.After(end) {
			problems = append(problems, fmt.Sprintf("schedule date %s is outside the event window %s..%s", day.Date, w.StartDate, w.EndDate))
		}
	}

	return problems
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}
	return time.Parse(DateLayout, value)
}

// ParseClock parses an HH:MM time of day and returns the minutes since midnight
func ParseClock(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("time cannot be empty")
	}
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
