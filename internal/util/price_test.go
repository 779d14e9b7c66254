package util

import (
	"math"
	"testing"
)

func TestRoundToTick(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		tick     float64
		expected float64
	}{
		{
			name:     "basic rounding down",
			x:        1.2345,
			tick:     0.01,
			expected: 1.23,
		},
		{
			name:     "tie rounds away from zero",
			x:        1.235,
			tick:     0.01,
			expected: 1.24,
		},
		{
			name:     "larger tick size",
			x:        1.27,
			tick:     0.05,
			expected: 1.25,
		},
		{
			name:     "exact multiple",
			x:        1.25,
			tick:     0.05,
			expected: 1.25,
		},
		{
			name:     "zero tick returns input",
			x:        1.2345,
			tick:     0,
			expected: 1.2345,
		},
		{
			name:     "negative tick returns input",
			x:        1.2345,
			tick:     -0.01,
			expected: 1.2345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToTick(tt.x, tt.tick)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("RoundToTick(%v, %v) = %v, want %v", tt.x, tt.tick, got, tt.expected)
			}
		})
	}
}

func TestEnsureAboveEntry(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		entry    float64
		tick     float64
		expected float64
	}{
		{
			name:     "price already above entry",
			price:    0.29,
			entry:    0.25,
			tick:     0.01,
			expected: 0.29,
		},
		{
			name:     "price rounded onto entry bumps one tick",
			price:    0.25,
			entry:    0.25,
			tick:     0.01,
			expected: 0.26,
		},
		{
			name:     "price below entry bumps one tick",
			price:    0.24,
			entry:    0.25,
			tick:     0.01,
			expected: 0.26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureAboveEntry(tt.price, tt.entry, tt.tick)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("EnsureAboveEntry(%v, %v, %v) = %v, want %v", tt.price, tt.entry, tt.tick, got, tt.expected)
			}
		})
	}
}
