package delay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Shape(t *testing.T) {
	tests := []struct {
		mode Mode
		in   float64
		want float64
	}{
		{SoftClip, 0.5, math.Tanh(0.5)},
		{HardClip, 3, 1},
		{HardClip, -3, -1},
		{HardClip, 0.2, 0.2},
		{Tube, 1, 1 - math.Exp(-1)},
		{Tube, -1, -(1 - math.Exp(-1))},
		{Fuzz, 1, 1 - math.Exp(-2)},
		{Fuzz, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.mode.Shape(tt.in), 1e-15)
		})
	}
}

func TestDistort_Mix(t *testing.T) {
	in := []float64{0.5, -0.25, 0}
	out, err := Distort(in, DistortionParams{Mode: HardClip, Drive: 4, Mix: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*0.5+1*0.5, out[0], 1e-15)
	assert.InDelta(t, -0.25*0.5-1*0.5, out[1], 1e-15)
	assert.InDelta(t, 0.0, out[2], 0)
}

func TestDistort_Invalid(t *testing.T) {
	_, err := Distort([]float64{1}, DistortionParams{Drive: 0, Mix: 0.5})
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = Distort([]float64{1}, DistortionParams{Drive: 1, Mix: 2})
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = Distort([]float64{1}, DistortionParams{Mode: Mode(9), Drive: 1})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{SoftClip, HardClip, Tube, Fuzz} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("bitcrush")
	require.ErrorIs(t, err, ErrInvalidParams)
}
