package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-09-08", want: New(2025, time.September, 8)},
		{in: "2025-9-8", want: New(2025, time.September, 8)},
		{in: " 2025-09-08 ", want: New(2025, time.September, 8)},
		{in: "2025-09-08T21:15:00.000Z", want: New(2025, time.September, 8)},
		{in: "08/09/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddMonth(t *testing.T) {
	testCases := []struct {
		in     Date
		months int
		want   Date
	}{
		{New(2025, time.January, 15), 1, New(2025, time.February, 15)},
		{New(2025, time.December, 15), 1, New(2026, time.January, 15)},
		{New(2025, time.January, 31), 1, New(2025, time.March, 3)},
		{New(2025, time.March, 15), -3, New(2024, time.December, 15)},
	}
	for _, tc := range testCases {
		if got := tc.in.AddMonth(tc.months); got != tc.want {
			t.Errorf("%v.AddMonth(%d) = %v, want %v", tc.in, tc.months, got, tc.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := New(2025, time.February, 20)
	b := New(2025, time.March, 7)
	if got := DaysBetween(a, b); got != 15 {
		t.Errorf("DaysBetween(%v, %v) = %d, want 15", a, b, got)
	}
	if got := DaysBetween(b, a); got != 15 {
		t.Errorf("DaysBetween(%v, %v) = %d, want 15", b, a, got)
	}
}

func TestMonthsBetween(t *testing.T) {
	testCases := []struct {
		a, b Date
		want int
	}{
		{New(2025, time.January, 31), New(2025, time.February, 1), 1},
		{New(2025, time.January, 1), New(2025, time.January, 31), 0},
		{New(2024, time.November, 10), New(2025, time.February, 10), 3},
		{New(2024, time.March, 10), New(2025, time.March, 9), 12},
	}
	for _, tc := range testCases {
		if got := MonthsBetween(tc.a, tc.b); got != tc.want {
			t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestStartEndOf(t *testing.T) {
	d := New(2025, time.August, 13) // a Wednesday
	testCases := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2025, time.August, 11), New(2025, time.August, 17)},
		{Monthly, New(2025, time.August, 1), New(2025, time.August, 31)},
		{Quarterly, New(2025, time.July, 1), New(2025, time.September, 30)},
		{Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.start {
				t.Errorf("StartOf() = %v, want %v", got, tc.start)
			}
			if got := d.EndOf(tc.period); got != tc.end {
				t.Errorf("EndOf() = %v, want %v", got, tc.end)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want Date
	}{
		{"string", `"2025-09-08"`, New(2025, time.September, 8)},
		{"empty", `""`, Date{}},
		{"null", `null`, Date{}},
		{"unix millis", `1757289600000`, New(2025, time.September, 8)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got Date
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	b, err := json.Marshal(New(2025, time.September, 8))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-09-08"` {
		t.Errorf("Marshal() = %s, want %q", b, "2025-09-08")
	}
}
