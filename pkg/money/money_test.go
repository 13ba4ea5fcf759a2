package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"exact", 12.50, 1250},
		{"zero", 0, 0},
		{"roundsUp", 0.105, 11},
		{"negative", -3.99, -399},
		// 0.1+0.2 style amounts must not drift once in minor units
		{"floatHazard", 0.30000000000000004, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFloat(tt.amount).Cents)
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := FromCents(1250)
	b := FromCents(199)

	assert.Equal(t, int64(1449), a.Add(b).Cents)
	assert.Equal(t, int64(1051), a.Sub(b).Cents)
	assert.Equal(t, int64(3750), a.MulInt(3).Cents)
	assert.True(t, b.Sub(a).IsNegative())
	assert.True(t, a.Sub(a).IsZero())
}

func TestDecimalRoundTrip(t *testing.T) {
	m := FromCents(1999)
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, m, FromDecimal(m.Decimal()))
}

func TestString(t *testing.T) {
	assert.Equal(t, "19.99", FromCents(1999).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "-3.99", FromCents(-399).String())
}
