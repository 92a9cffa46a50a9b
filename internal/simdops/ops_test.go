package simdops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	a := []float64{1, -2, 3, -4, 5}
	dst := make([]float64, len(a))
	Scale(dst, a, 0.5)
	assert.InDeltaSlice(t, []float64{0.5, -1, 1.5, -2, 2.5}, dst, 1e-15)

	// In-place
	Scale(a, a, 2)
	assert.InDeltaSlice(t, []float64{2, -4, 6, -8, 10}, a, 1e-15)
}

func TestScale_Empty(t *testing.T) {
	assert.NotPanics(t, func() { Scale(nil, nil, 2) })
}

func TestSumEnergyRMS(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	assert.InDelta(t, 10.0, Sum(a), 1e-12)
	assert.InDelta(t, 30.0, Energy(a), 1e-12)
	assert.InDelta(t, math.Sqrt(7.5), RMS(a), 1e-12)

	assert.InDelta(t, 0.0, Sum(nil), 0)
	assert.InDelta(t, 0.0, Energy(nil), 0)
	assert.InDelta(t, 0.0, RMS(nil), 0)
}

func TestMaxAbs(t *testing.T) {
	assert.InDelta(t, 0.9, MaxAbs([]float64{0.1, -0.9, 0.5}), 0)
	assert.InDelta(t, 0.0, MaxAbs(nil), 0)
	assert.True(t, math.IsNaN(MaxAbs([]float64{0.1, math.NaN(), -0.9})))
	assert.True(t, math.IsInf(MaxAbs([]float64{0.1, math.Inf(-1)}), 1))
}

func TestAddScaled(t *testing.T) {
	dst := []float64{1, 1, 1}
	AddScaled(dst, 0.5, []float64{2, 4, 6})
	assert.InDeltaSlice(t, []float64{2, 3, 4}, dst, 1e-15)

	Add(dst, []float64{1, 1, 1})
	assert.InDeltaSlice(t, []float64{3, 4, 5}, dst, 1e-15)
}

func TestMix(t *testing.T) {
	dry := []float64{1, 1}
	wet := []float64{0, 2}
	dst := make([]float64, 2)
	Mix(dst, dry, wet, 0.25)
	assert.InDeltaSlice(t, []float64{0.75, 1.25}, dst, 1e-15)
}

func TestInterleaveRoundTrip(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}
	inter := make([]float64, 6)
	Interleave2(inter, a, b)
	require.Equal(t, []float64{1, -1, 2, -2, 3, -3}, inter)

	ga := make([]float64, 3)
	gb := make([]float64, 3)
	Deinterleave2(ga, gb, inter)
	assert.Equal(t, a, ga)
	assert.Equal(t, b, gb)
}

func TestDeinterleave2_Long(t *testing.T) {
	const n = 1001
	inter := make([]float64, 2*n)
	for i := range inter {
		inter[i] = float64(i)
	}

	a := make([]float64, n)
	b := make([]float64, n)
	Deinterleave2(a, b, inter)
	for i := range n {
		require.InDelta(t, float64(2*i), a[i], 0)
		require.InDelta(t, float64(2*i+1), b[i], 0)
	}

	Deinterleave2(nil, nil, inter)
}
