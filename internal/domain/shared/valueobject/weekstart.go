package valueobject

import (
	"fmt"
	"time"
)

// WeekStart is the Monday that identifies a payroll/certification week.
// It is always a bare calendar date (midnight UTC, no time component).
type WeekStart struct {
	date time.Time
}

// NormalizeWeekStart returns the Monday of the ISO week containing d.
// A Sunday maps to the previous Monday.
func NormalizeWeekStart(d time.Time) WeekStart {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	// Monday=0 ... Sunday=6
	offset := (int(day.Weekday()) + 6) % 7
	return WeekStart{date: day.AddDate(0, 0, -offset)}
}

// ParseWeekStart parses a YYYY-MM-DD date and normalizes it to its Monday.
func ParseWeekStart(s string) (WeekStart, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return WeekStart{}, fmt.Errorf("invalid week date %q: %w", s, err)
	}
	return NormalizeWeekStart(d), nil
}

// Date returns the underlying Monday date
func (w WeekStart) Date() time.Time {
	return w.date
}

// End returns the Sunday that closes the week
func (w WeekStart) End() time.Time {
	return w.date.AddDate(0, 0, 6)
}

// Contains reports whether d falls within the week
func (w WeekStart) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.date) && !day.After(w.End())
}

// Equal reports whether both values identify the same week
func (w WeekStart) Equal(other WeekStart) bool {
	return w.date.Equal(other.date)
}

// String returns the week start formatted as YYYY-MM-DD
func (w WeekStart) String() string {
	return w.date.Format("2006-01-02")
}
