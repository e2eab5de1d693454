package date

import (
	"fmt"
	"strings"
)

// Period is a standard calendar period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod accepts both the adjective and the noun: "monthly" or "month".
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Next returns the first day of the next step of length p after d.
func (d Date) Next(p Period) Date {
	switch p {
	case Daily:
		return d.Add(1)
	case Weekly:
		return d.Add(7)
	case Monthly:
		return d.AddMonth(1)
	case Quarterly:
		return d.AddMonth(3)
	case Yearly:
		return d.AddMonth(12)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
