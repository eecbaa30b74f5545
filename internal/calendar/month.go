package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", raw)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First returns the first day of the month at UTC midnight.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month at UTC midnight.
func (m Month) Last() time.Time {
	return time.Date(m.Year, m.Month, DaysInMonth(m.Year, m.Month), 0, 0, 0, 0, time.UTC)
}

// Prev returns the preceding month.
func (m Month) Prev() Month { return m.Shift(-1) }

// Next returns the following month.
func (m Month) Next() Month { return m.Shift(1) }

// Shift moves by delta months.
func (m Month) Shift(delta int) Month {
	return MonthOf(ShiftMonth(m.Year, m.Month, delta))
}

// DaysInMonth uses day 0 of the following month, so leap years fall out of
// the standard library's normalisation.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is the number of empty cells before day 1 in a Monday-first
// grid. Always within [0, 6].
func LeadingBlanks(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// MonthGrid returns LeadingBlanks nil cells followed by one cell per day.
func MonthGrid(year int, month time.Month) []*time.Time {
	blanks := LeadingBlanks(year, month)
	days := DaysInMonth(year, month)
	grid := make([]*time.Time, blanks, blanks+days)
	for d := 1; d <= days; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		grid = append(grid, &day)
	}
	return grid
}

// ShiftMonth normalises to day 1 before adding months so that Jan 31 + 1
// yields Feb 1 rather than overflowing into March.
func ShiftMonth(year int, month time.Month, delta int) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
}
