// Package dates provides partial (year/month) dates and the interval arithmetic
// used for career histories, where months and end dates are often missing.
package dates

import (
	"fmt"
	"time"
)

// PartialDate is a calendar date that may be missing its month.
// A zero Year means the year is unknown; a zero Month means the month is absent.
type PartialDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

// HasYear reports whether the year component is known.
func (d PartialDate) HasYear() bool {
	return d.Year > 0
}

// HasMonth reports whether the month component is present and in [1,12].
func (d PartialDate) HasMonth() bool {
	return d.Month >= 1 && d.Month <= 12
}

// IsZero reports whether neither component is present.
func (d PartialDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0
}

// YearOnly drops the month component.
func (d PartialDate) YearOnly() PartialDate {
	return PartialDate{Year: d.Year}
}

// String formats the date as YYYY-MM, YYYY, or "unknown".
func (d PartialDate) String() string {
	switch {
	case d.HasYear() && d.HasMonth():
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case d.HasYear():
		return fmt.Sprintf("%04d", d.Year)
	default:
		return "unknown"
	}
}

// FromTime returns the year and month of t.
func FromTime(t time.Time) PartialDate {
	return PartialDate{Year: t.Year(), Month: int(t.Month())}
}

// MonthsBetween returns the whole months from start to end.
// ok is false when either date lacks a year or a month; callers must then
// report the duration as unknown instead of using the returned value.
// Inconsistent data (end before start) yields a negative count.
func MonthsBetween(start, end PartialDate) (months int, ok bool) {
	if !start.HasYear() || !start.HasMonth() || !end.HasYear() || !end.HasMonth() {
		return 0, false
	}
	return (end.Year-start.Year)*12 + (end.Month - start.Month), true
}

// Interval is a date range. A nil End means the interval is ongoing.
type Interval struct {
	Start PartialDate  `json:"start"`
	End   *PartialDate `json:"end"`
}

// IsOngoing reports whether the interval has no end.
func (i Interval) IsOngoing() bool {
	return i.End == nil
}

// DurationMonths returns the closed interval's length in whole months.
// Ongoing intervals and intervals with missing months have no duration.
func (i Interval) DurationMonths() (int, bool) {
	if i.End == nil {
		return 0, false
	}
	return MonthsBetween(i.Start, *i.End)
}

// Closed returns a copy of the interval ending at end.
func (i Interval) Closed(end PartialDate) Interval {
	return Interval{Start: i.Start, End: &end}
}

// OptionalEnd converts a possibly empty end date into an interval end.
// An end carrying neither year nor month is treated as absent (ongoing).
func OptionalEnd(end PartialDate) *PartialDate {
	if end.IsZero() {
		return nil
	}
	return &end
}
