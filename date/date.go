// Package date provides a day-granular Date and the calendar arithmetic the
// ledger needs: periods, ranges, day and month differences.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

const Day = 24 * time.Hour

// Date represents a date with day-level granularity.
//
// The zero Date is used for "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the Date of t in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current date.
func Today() Date { return Of(time.Now()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of that day.
func (d Date) Time() time.Time { return d.time() }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// String format the date in its standard format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// AddMonth returns a new Date with the given number of calendar months added.
//
// Like time.AddDate, overflowing days roll into the following month
// (January 31st plus one month is March 3rd or 2nd).
func (d Date) AddMonth(months int) Date { return New(d.y, d.m+time.Month(months), d.d) }

// DaysBetween returns the absolute number of whole days between a and b.
func DaysBetween(a, b Date) int {
	diff := b.time().Sub(a.time())
	if diff < 0 {
		diff = -diff
	}
	return int(diff / Day)
}

// MonthsBetween returns the calendar month difference from a to b, counting
// only years and months: 2025-01-31 to 2025-02-01 is one month.
func MonthsBetween(a, b Date) int {
	return (b.y-a.y)*12 + int(b.m) - int(a.m)
}

// StartOf returns the date of beginning of a given period
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := int(d.Weekday() - time.Monday)
		if offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		quarter := (d.m - 1) / 3
		return New(d.y, quarter*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic(fmt.Sprintf("unknown period %d", period))
	}
}

// EndOf returns the date of end of a given period
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		quarter := (d.m - 1) / 3          // in [0..3]
		return New(d.y, quarter*3+4, 0) // day 0 of the next quarter
	case Yearly:
		return New(d.y+1, time.January, 0)
	default:
		panic(fmt.Sprintf("unknown period %d", period))
	}
}

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1" and full RFC 3339 timestamps, whose time part is dropped.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if on, err := time.Parse(readDateFormat, str); err == nil {
		return Of(on), nil
	}
	if on, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return Of(on), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, DateFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a date from a json string. Empty strings and null
// decode to the zero Date. Numbers are read as Unix milliseconds, which is
// how some older documents stored due dates.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var v any
	if err := json.Unmarshal(bytes, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*d = Date{}
	case float64:
		*d = Of(time.UnixMilli(int64(v)).UTC())
	case string:
		if v == "" {
			*d = Date{}
			return nil
		}
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("invalid date %s", bytes)
	}
	return nil
}

// MarshalJSON writes the date as a json string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
