package moneymanager

import "fmt"

// Percent is a whole percentage, as displayed on budget progress bars.
type Percent int

func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int(p))
}

// percentOf returns the share of spent in limit, clamped to [0, 100].
// A zero limit yields 0.
func percentOf(spent, limit Money) Percent {
	if !limit.IsPositive() {
		return 0
	}
	p := spent.ratio(limit)
	switch {
	case p > 100:
		return 100
	case p < 0:
		return 0
	default:
		return Percent(p)
	}
}

// Share returns part as a percentage of total, clamped to [0, 100].
func Share(part, total Money) Percent { return percentOf(part, total) }
