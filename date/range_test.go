package date

import (
	"slices"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "week", want: Weekly},
		{in: "Monthly", want: Monthly},
		{in: "quarter", want: Quarterly},
		{in: "year", want: Yearly},
		{in: "fortnight", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(New(2025, time.September, 10), Monthly)
	testCases := []struct {
		name string
		r    Range
		in   Date
		want bool
	}{
		{"first day", r, New(2025, time.September, 1), true},
		{"last day", r, New(2025, time.September, 30), true},
		{"before", r, New(2025, time.August, 31), false},
		{"after", r, New(2025, time.October, 1), false},
		{"open start", Range{To: New(2025, time.January, 1)}, New(1999, time.January, 1), true},
		{"open end", Range{From: New(2025, time.January, 1)}, New(2099, time.January, 1), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.in); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r, tc.in, got, tc.want)
			}
		})
	}
}

func TestRangeSteps(t *testing.T) {
	r := Range{From: New(2025, time.January, 1), To: New(2025, time.April, 1)}
	got := slices.Collect(r.Steps(Monthly))
	want := []Date{
		New(2025, time.January, 1),
		New(2025, time.February, 1),
		New(2025, time.March, 1),
		New(2025, time.April, 1),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Steps(Monthly) = %v, want %v", got, want)
	}

	week := Range{From: New(2025, time.March, 1), To: New(2025, time.March, 7)}
	if n := len(slices.Collect(week.Steps(Daily))); n != 7 {
		t.Errorf("Steps(Daily) yielded %d days, want 7", n)
	}
}

func TestRangeIdentifier(t *testing.T) {
	d := New(2025, time.August, 13)
	testCases := []struct {
		r    Range
		want string
	}{
		{NewRange(d, Daily), "2025-08-13"},
		{NewRange(d, Weekly), "2025-W33"},
		{NewRange(d, Monthly), "2025-08"},
		{NewRange(d, Quarterly), "2025-Q3"},
		{NewRange(d, Yearly), "2025"},
		{Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
	}
	for _, tc := range testCases {
		if got := tc.r.Identifier(); got != tc.want {
			t.Errorf("Identifier() = %q, want %q", got, tc.want)
		}
	}
}
