package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
		ok   bool
	}{
		{"empty", nil, 0, false},
		{"single", []float64{5}, 5, true},
		{"several", []float64{10, 20, 30}, 20, true},
		{"fractional", []float64{1, 2}, 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mean(tt.data)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestWeightedMean(t *testing.T) {
	t.Run("weights pull the mean", func(t *testing.T) {
		// 100@30 and 200@10: (100*30 + 200*10) / 40 = 125
		got, ok := WeightedMean([]float64{100, 200}, []float64{30, 10})
		assert.True(t, ok)
		assert.InDelta(t, 125.0, got, 1e-9)
	})

	t.Run("equal weights reduce to the mean", func(t *testing.T) {
		got, ok := WeightedMean([]float64{150, 200}, []float64{5, 5})
		assert.True(t, ok)
		assert.InDelta(t, 175.0, got, 1e-9)
	})

	t.Run("zero weight total", func(t *testing.T) {
		_, ok := WeightedMean([]float64{100, 200}, []float64{0, 0})
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := WeightedMean(nil, nil)
		assert.False(t, ok)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, ok := WeightedMean([]float64{1, 2}, []float64{1})
		assert.False(t, ok)
	})
}

// -----------------------------------------------------------------------------

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
		ok   bool
	}{
		{"empty", nil, 0, false},
		{"odd count", []float64{30, 10, 20}, 20, true},
		{"even count averages middle pair", []float64{40, 10, 30, 20}, 25, true},
		{"single", []float64{7}, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Median(tt.data)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestMedianDoesNotMutateInput(t *testing.T) {
	data := []float64{3, 1, 2}
	Median(data)
	assert.Equal(t, []float64{3, 1, 2}, data)
}

// -----------------------------------------------------------------------------

func TestMinMax(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, ok := MinMax(nil)
		assert.False(t, ok)
	})

	t.Run("mixed", func(t *testing.T) {
		min, max, ok := MinMax([]float64{5, 1, 9, 3})
		assert.True(t, ok)
		assert.Equal(t, 1.0, min)
		assert.Equal(t, 9.0, max)
	})
}
