// Package dateutil provides calendar-day arithmetic on a comparable Date
// value. Dates render as ISO YYYY-MM-DD strings only at serialization
// boundaries; all comparisons go through typed methods.
package dateutil

import (
	"fmt"
	"time"
)

// ISOFormat is the wire format for dates.
const ISOFormat = "2006-01-02"

// Date is a calendar day with no time-of-day or location attached.
// The zero value means "unset".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns a normalized Date (out-of-range day/month values carry over,
// matching time.Date semantics).
func New(year int, month time.Month, day int) Date {
	return fromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse parses an ISO YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return fromTime(t), nil
}

// MustParse parses an ISO date string and panics on error. For constants
// and tests only.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Today returns the current calendar day in local time.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

func fromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the unset zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns d shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return fromTime(d.time().AddDate(0, 0, n))
}

// AddMonths returns d shifted by n calendar months. Day-of-month overflow
// normalizes forward (Jan 31 + 1 month = Mar 2/3), per time.AddDate.
func (d Date) AddMonths(n int) Date {
	return fromTime(d.time().AddDate(0, n, 0))
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// IsWeekend reports whether d is a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Compare returns -1, 0, or +1 as d is before, equal to, or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d falls after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// DaysBetween returns the number of calendar days from a to b
// (negative when b is before a).
func DaysBetween(a, b Date) int {
	return int(b.time().Sub(a.time()).Hours() / 24)
}

// MonthDates enumerates every day of the given month in order.
func MonthDates(year int, month time.Month) []Date {
	var dates []Date
	for d := New(year, month, 1); d.Month == month; d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
