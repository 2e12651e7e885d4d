// Package period implements the calendar arithmetic used by ledger reports:
// fiscal-year ranges, month ranges and rolling month sequences. All dates
// are calendar days at UTC midnight.
package period

import (
	"fmt"
	"time"
)

// DefaultFiscalStartMonth is April, the conventional start of a Japanese
// business year.
const DefaultFiscalStartMonth = 4

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DayRange is an inclusive range of calendar days.
type DayRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Date returns the calendar day y-m-d at UTC midnight. Out-of-range months
// and days are normalised, so Date(2025, 13, 1) is 2026-01-01.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to its calendar day at UTC midnight, keeping the
// wall-clock date t carries in its own location.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Of returns the month containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// AddMonths shifts ym by n months, rolling over year boundaries.
func (ym YearMonth) AddMonths(n int) YearMonth {
	idx := ym.Year*12 + (ym.Month - 1) + n
	year, month := idx/12, idx%12
	if month < 0 {
		year--
		month += 12
	}
	return YearMonth{Year: year, Month: month + 1}
}

// FirstDay returns the first day of the month.
func (ym YearMonth) FirstDay() time.Time {
	return Date(ym.Year, ym.Month, 1)
}

// LastDay returns the last day of the month.
func (ym YearMonth) LastDay() time.Time {
	return ym.AddMonths(1).FirstDay().AddDate(0, 0, -1)
}

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Valid reports whether the month number is in 1..12.
func (ym YearMonth) Valid() bool {
	return ym.Month >= 1 && ym.Month <= 12
}

// Contains reports whether day falls inside r, inclusive on both ends.
func (r DayRange) Contains(day time.Time) bool {
	day = Normalize(day)
	return !day.Before(r.Start) && !day.After(r.End)
}

// FiscalRange returns the fiscal year starting on the first day of
// startMonth in year and spanning the given number of months.
func FiscalRange(year, startMonth, months int) DayRange {
	start := Date(year, startMonth, 1)
	end := Date(year, startMonth+months, 1).AddDate(0, 0, -1)
	return DayRange{Start: start, End: end}
}

// MonthRange returns the first and last day of ym.
func MonthRange(ym YearMonth) DayRange {
	return DayRange{Start: ym.FirstDay(), End: ym.LastDay()}
}

// PreviousMonth returns the month before ym.
func PreviousMonth(ym YearMonth) YearMonth {
	return ym.AddMonths(-1)
}

// RecentMonths returns the month containing now and the n-1 months before
// it, oldest first.
func RecentMonths(now time.Time, n int) []YearMonth {
	if n <= 0 {
		return nil
	}
	current := Of(now)
	months := make([]YearMonth, n)
	for i := 0; i < n; i++ {
		months[n-1-i] = current.AddMonths(-i)
	}
	return months
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: expected YYYY-MM", s)
	}
	return Of(t), nil
}

// MonthsBetween counts the calendar months from start to end, counting
// both the starting and ending month.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}
