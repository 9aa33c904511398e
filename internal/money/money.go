// Package money holds the decimal currency type used for every amount that
// crosses the ledger API, and the tolerance rule used to reconcile sums.
package money

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the absolute tolerance allowed when comparing a sum of amounts
// against a target. Amounts are denominated to the cent, so anything above
// Epsilon is a real mismatch.
var Epsilon = decimal.New(1, -6)

// Money is an ARS amount. The zero value is zero pesos.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// FromInt builds an amount from whole pesos.
func FromInt(pesos int64) Money { return Money{d: decimal.NewFromInt(pesos)} }

// Parse reads a decimal amount such as "15000.50". A comma decimal separator
// ("15000,50") is accepted as well; thousands separators are not.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Sum adds amounts exactly.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.d)
	}
	return Money{d: total}
}

// IsReconciled reports whether |total - target| <= Epsilon.
func IsReconciled(total, target Money) bool {
	return total.d.Sub(target.d).Abs().LessThanOrEqual(Epsilon)
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Cmp(o Money) int   { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) IsZero() bool     { return m.d.IsZero() }

// Float64 is for presentation layers (spreadsheets) only, never for arithmetic.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String renders the exact value without trailing padding ("15000.5").
func (m Money) String() string { return m.d.String() }

// Format renders the amount with two decimals ("15000.50").
func (m Money) Format() string { return m.d.StringFixed(2) }

// MarshalJSON encodes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. null leaves the value at zero.
func (m *Money) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode amount: %w", err)
	}
	m.d = d
	return nil
}
