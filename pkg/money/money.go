// Package money represents monetary amounts as integer minor units (cents).
// Arithmetic on stored amounts stays in integers; ratio math in the cost and
// analytics calculators goes through decimal to avoid binary floating point.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units with an implicit currency.
type Money struct {
	Cents int64 `json:"cents" bson:"cents"`
}

// FromCents builds a Money from minor units.
func FromCents(cents int64) Money {
	return Money{Cents: cents}
}

// FromFloat converts a major-unit float (e.g. 12.50) to Money, rounding to
// the nearest cent. Used at the JSON boundary only.
func FromFloat(amount float64) Money {
	return Money{Cents: decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()}
}

// FromDecimal converts a major-unit decimal to Money, rounding to the
// nearest cent.
func FromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()}
}

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(decimal.NewFromInt(100))
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// MulInt scales the amount by an integer factor (e.g. quantity).
func (m Money) MulInt(factor int64) Money {
	return Money{Cents: m.Cents * factor}
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

func (m Money) IsNegative() bool {
	return m.Cents < 0
}

func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
