package moneymanager

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in the ledger's currency.
//
// Amounts are exact decimals so that reversing and re-applying a transaction
// never drifts a balance.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseMoney reads an amount like "12.50". A leading currency symbol or
// thousands separators are not accepted.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// String returns the plain decimal representation, "12.5" for twelve and a half.
func (m Money) String() string { return m.value.String() }

// Format returns the amount formatted for the given ISO currency code, using
// its symbol, separators and fraction digits.
func (m Money) Format(currency string) string {
	// money.New never returns a nil currency, unknown codes get a default one.
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedFormat is like Format but always carries a sign. Zero is "-".
func (m Money) SignedFormat(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// ratio returns 100*m/n rounded to the nearest integer. n must not be zero.
func (m Money) ratio(n Money) int64 {
	return m.value.Mul(decimal.NewFromInt(100)).Div(n.value).Round(0).IntPart()
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON reads a JSON number. Quoted numbers are accepted too, null
// is zero.
func (m *Money) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	if n == "" {
		*m = Money{}
		return nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	m.value = d
	return nil
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
