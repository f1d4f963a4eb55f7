package payment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		major    float64
		currency string
		want     int64
	}{
		{"whole dollars", 10, "usd", 1000},
		{"cents", 19.99, "usd", 1999},
		{"float artefact rounds", 0.29, "usd", 29},
		{"currency is case insensitive", 2.5, "USD", 250},
		{"smallest unit", 0.01, "usd", 1},
		{"zero decimal currency", 500, "jpy", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(tt.major, tt.currency)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinorUnits_Invalid(t *testing.T) {
	for _, major := range []float64{0, -5, 0.001, math.NaN(), math.Inf(1)} {
		_, err := ToMinorUnits(major, "usd")
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", major)
	}
}
