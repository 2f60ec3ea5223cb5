// Package money holds fixed-point amounts with two fraction digits.
//
// Amounts are kept as integer cents so sums never drift; parsing and
// formatting go through shopspring/decimal.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for anything that is not a positive decimal
// with at most two fraction digits.
var ErrInvalidAmount = errors.New("invalid amount")

// maxAmount mirrors a NUMERIC(10,2) column.
var maxAmount = decimal.RequireFromString("99999999.99")

// Amount is a monetary value in cents.
type Amount int64

// Parse converts a decimal string such as "12.34" into an Amount.
// Values that would need rounding are rejected rather than truncated.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() || d.GreaterThan(maxAmount) {
		return 0, ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, ErrInvalidAmount
	}
	return Amount(d.Shift(2).IntPart()), nil
}

// FromCents builds an Amount from a cent count.
func FromCents(c int64) Amount {
	return Amount(c)
}

// Cents returns the raw cent count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Decimal returns the exact decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String formats the amount with exactly two fraction digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Float64 is for chart series only.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

// Floor0 clamps negative amounts to zero.
func (a Amount) Floor0() Amount {
	if a < 0 {
		return 0
	}
	return a
}

// Change is a percentage difference that may be undefined.
type Change struct {
	Percent float64
	Valid   bool
}

// MonthOverMonth returns (cur - prev) / prev * 100. The change is not
// applicable when prev is zero.
func MonthOverMonth(cur, prev Amount) Change {
	if prev == 0 {
		return Change{}
	}
	c, p := cur.Decimal(), prev.Decimal()
	pct := c.Sub(p).Div(p).Mul(decimal.NewFromInt(100)).Round(2)
	return Change{Percent: pct.InexactFloat64(), Valid: true}
}

func (c Change) String() string {
	if !c.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", c.Percent)
}
