package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "finite", value: 0.25, want: 0.25},
		{name: "high", value: 7, want: 1},
		{name: "nan", value: math.NaN(), want: 0.2},
		{name: "inf", value: math.Inf(1), want: 0.2},
		{name: "neg-inf", value: math.Inf(-1), want: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.value, 0, 1, 0.2); got != tt.want {
				t.Fatalf("Sanitize(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
