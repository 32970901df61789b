package dateutil

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2024-01-05")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Year != 2024 || d.Month != time.January || d.Day != 5 {
		t.Fatalf("Parse = %+v, want 2024-01-05", d)
	}
	if got := d.String(); got != "2024-01-05" {
		t.Fatalf("String = %q, want 2024-01-05", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-01", "2024/01/01"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-03-01", 14, "2024-03-15"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).AddDays(tt.n).String(); got != tt.want {
			t.Errorf("%s + %d days = %s, want %s", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestAddMonths(t *testing.T) {
	if got := MustParse("2024-03-15").AddMonths(1).String(); got != "2024-04-15" {
		t.Fatalf("AddMonths(1) = %s, want 2024-04-15", got)
	}
	// Overflow normalizes forward, matching time.AddDate.
	if got := MustParse("2024-01-31").AddMonths(1).String(); got != "2024-03-02" {
		t.Fatalf("AddMonths(1) from Jan 31 = %s, want 2024-03-02", got)
	}
}

func TestIsWeekend(t *testing.T) {
	if !MustParse("2024-01-06").IsWeekend() { // Saturday
		t.Error("2024-01-06 should be a weekend")
	}
	if !MustParse("2024-01-07").IsWeekend() { // Sunday
		t.Error("2024-01-07 should be a weekend")
	}
	if MustParse("2024-01-01").IsWeekend() { // Monday
		t.Error("2024-01-01 should not be a weekend")
	}
}

func TestCompareOrdering(t *testing.T) {
	a := MustParse("2024-01-31")
	b := MustParse("2024-02-01")
	if !a.Before(b) || b.Before(a) || a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Fatal("2024-01-31 must order before 2024-02-01")
	}
	if a.Compare(a) != 0 {
		t.Fatal("Compare with self should be 0")
	}
}

func TestDaysBetween(t *testing.T) {
	a := MustParse("2024-02-28")
	b := MustParse("2024-03-01")
	if got := DaysBetween(a, b); got != 2 { // leap year
		t.Fatalf("DaysBetween = %d, want 2", got)
	}
	if got := DaysBetween(b, a); got != -2 {
		t.Fatalf("DaysBetween reversed = %d, want -2", got)
	}
}

func TestMonthDates(t *testing.T) {
	days := MonthDates(2024, time.February)
	if len(days) != 29 {
		t.Fatalf("February 2024 has %d days, want 29", len(days))
	}
	if days[0].String() != "2024-02-01" || days[28].String() != "2024-02-29" {
		t.Fatalf("MonthDates bounds = %s..%s", days[0], days[28])
	}
}

func TestZeroDate(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Fatal("zero Date should report IsZero")
	}
	if MustParse("2024-01-01").IsZero() {
		t.Fatal("parsed date should not report IsZero")
	}
}
