package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

func TestAnalyze_SinePeak(t *testing.T) {
	const sr = 44100
	in := testutil.Sine(441, 0.5, sr, sr)

	r, err := Analyze(in, sr)
	require.NoError(t, err)
	assert.InDelta(t, 441.0, r.PeakFrequency, 1)
	assert.Greater(t, r.MidEnergy, r.BassEnergy)
	assert.Greater(t, r.MidEnergy, r.TrebleEnergy)
	assert.Greater(t, r.TotalEnergy, 0.0)
	testutil.AssertInRange(t, r.SpectralCentroid, 300, 3000)
}

func TestAnalyze_Bands(t *testing.T) {
	const sr = 44100
	bass := testutil.Sine(100, 0.5, sr, sr)
	treble := testutil.Sine(8000, 0.5, sr, sr)

	rb, err := Analyze(bass, sr)
	require.NoError(t, err)
	rt, err := Analyze(treble, sr)
	require.NoError(t, err)

	assert.Greater(t, rb.BassEnergy, rb.TrebleEnergy)
	assert.Greater(t, rt.TrebleEnergy, rt.BassEnergy)
	assert.Greater(t, rt.SpectralCentroid, rb.SpectralCentroid)
}

func TestAnalyze_SilenceAndEmpty(t *testing.T) {
	r, err := Analyze(make([]float64, 1024), 44100)
	require.NoError(t, err)
	assert.Equal(t, Result{}, r)

	r, err = Analyze(nil, 44100)
	require.NoError(t, err)
	assert.Equal(t, Result{}, r)

	// 16 samples at 8 kHz put the bins 500 Hz apart, so the bass band is empty.
	r, err = Analyze(testutil.Sine(1000, 0.5, 8000, 16), 8000)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(r.BassEnergy))
	assert.InDelta(t, 0.0, r.BassEnergy, 0)
}

func TestAnalyze_InvalidRate(t *testing.T) {
	_, err := Analyze([]float64{1, 2}, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsolateCenter(t *testing.T) {
	const sr = 44100
	low := testutil.Sine(440, 0.4, sr, 4410)
	high := testutil.Sine(8820, 0.4, sr, 4410)
	l := make([]float64, len(low))
	for i := range l {
		l[i] = low[i] + high[i]
	}
	r := append([]float64(nil), l...)

	out, err := IsolateCenter(l, r, sr)
	require.NoError(t, err)
	require.Len(t, out, len(l))

	// Both tones fall on exact bins, so the result is low + high/2.
	for i := range out {
		assert.InDelta(t, low[i]+0.5*high[i], out[i], 1e-9)
	}
}

func TestIsolateCenter_Errors(t *testing.T) {
	_, err := IsolateCenter([]float64{1}, nil, 44100)
	require.ErrorIs(t, err, ErrInvalidInput)

	out, err := IsolateCenter(nil, nil, 44100)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMeasureLevels(t *testing.T) {
	in := testutil.Sine(1000, 0.5, 48000, 48000)
	l := MeasureLevels(in)
	assert.InDelta(t, 20*math.Log10(0.5), l.PeakDB, 0.01)
	assert.InDelta(t, 20*math.Log10(0.5/math.Sqrt2), l.RMSDB, 0.01)
	assert.InDelta(t, 20*math.Log10(math.Sqrt2), l.DynamicRangeDB, 0.01)

	silent := MeasureLevels(make([]float64, 10), make([]float64, 10))
	assert.InDelta(t, -200.0, silent.PeakDB, 1e-9)
	assert.InDelta(t, 0.0, silent.DynamicRangeDB, 0)
}
