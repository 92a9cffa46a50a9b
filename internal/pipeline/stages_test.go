package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/spectral"
	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

const sr = 44100.0

func stereoBuffer(t *testing.T, l, r []float64) *audio.Buffer {
	t.Helper()
	buf, err := audio.FromChannels([][]float64{l, r})
	require.NoError(t, err)
	return buf
}

func TestBandStage_PreservesShape(t *testing.T) {
	for _, id := range []StageID{VocalEnhance, BassBoost, TrebleEnhance, WarmthFilter} {
		t.Run(id.String(), func(t *testing.T) {
			stage, err := NewBandStage(id, BandPlan(id), sr, false)
			require.NoError(t, err)
			assert.Len(t, stage.Bands(), 4)

			buf := stereoBuffer(t, testutil.Noise(0.3, 4096, 1), testutil.Noise(0.3, 4096, 2))
			out, err := stage.Process(buf, 0.7)
			require.NoError(t, err)
			assert.Equal(t, audio.Stereo, out.Layout)
			assert.Equal(t, 4096, out.Frames())
			testutil.AssertNoNaNOrInf(t, out.Data[0])
			testutil.AssertNoNaNOrInf(t, out.Data[1])
		})
	}
}

func TestBandStage_BassBoostRaisesBass(t *testing.T) {
	stage, err := NewBandStage(BassBoost, BassBands(), sr, false)
	require.NoError(t, err)

	in := make([]float64, int(sr))
	low := testutil.Sine(100, 0.3, int(sr), len(in))
	high := testutil.Sine(5000, 0.3, int(sr), len(in))
	for i := range in {
		in[i] = low[i] + high[i]
	}

	out, err := stage.Process(monoBuffer(t, in), 1)
	require.NoError(t, err)

	before, err := spectral.Analyze(in, sr)
	require.NoError(t, err)
	after, err := spectral.Analyze(out.Data[0], sr)
	require.NoError(t, err)

	assert.Greater(t, after.BassEnergy, before.BassEnergy*1.2)
	assert.InDelta(t, before.TrebleEnergy, after.TrebleEnergy, before.TrebleEnergy*0.05)
}

func TestBandStage_LowSampleRateDropsBands(t *testing.T) {
	stage, err := NewBandStage(TrebleEnhance, TrebleBands(), 16000, false)
	require.NoError(t, err)
	// Limit is 7200 Hz: the bands starting at 8 and 12 kHz are dropped and
	// the 6-12 kHz band is clipped.
	require.Len(t, stage.Bands(), 2)
	assert.InDelta(t, 3000.0, stage.Bands()[0].Low, 0)
	assert.InDelta(t, 7200.0, stage.Bands()[1].High, 1e-9)
}

func TestBandStage_ResponseDB(t *testing.T) {
	stage, err := NewBandStage(BassBoost, BassBands(), sr, false)
	require.NoError(t, err)

	flat, err := stage.ResponseDB(100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, flat, 1e-12)

	bass, err := stage.ResponseDB(100, 1)
	require.NoError(t, err)
	assert.Greater(t, bass, 3.0)

	treble, err := stage.ResponseDB(10000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, treble, 0.5)
}

func TestBandStage_ParallelMatchesSequential(t *testing.T) {
	seq, err := NewBandStage(VocalEnhance, VocalBands(), sr, false)
	require.NoError(t, err)
	par, err := NewBandStage(VocalEnhance, VocalBands(), sr, true)
	require.NoError(t, err)

	buf := stereoBuffer(t, testutil.Noise(0.3, 2048, 5), testutil.Noise(0.3, 2048, 6))
	a, err := seq.Process(buf, 0.6)
	require.NoError(t, err)
	b, err := par.Process(buf, 0.6)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestStereoStage(t *testing.T) {
	stage := NewStereoStage(sr)

	mono := monoBuffer(t, testutil.Noise(0.3, 512, 1))
	out, err := stage.Process(mono, 1)
	require.NoError(t, err)
	assert.True(t, mono.Equal(out))

	x := testutil.Sine(440, 0.5, int(sr), 2048)
	same := stereoBuffer(t, append([]float64(nil), x...), append([]float64(nil), x...))
	out, err = stage.Process(same, 1)
	require.NoError(t, err)
	assert.Equal(t, out.Data[0], out.Data[1])
}

func TestCompressionStage(t *testing.T) {
	stage := NewCompressionStage(sr, true)
	buf := stereoBuffer(t, testutil.Sine(500, 0.9, int(sr), 4096), testutil.Sine(700, 0.9, int(sr), 4096))
	out, err := stage.Process(buf, 0.8)
	require.NoError(t, err)
	assert.Equal(t, 4096, out.Frames())
	testutil.AssertNoNaNOrInf(t, out.Data[0])
}

func TestMasteringStage(t *testing.T) {
	stage, err := NewMasteringStage(sr, false)
	require.NoError(t, err)

	in := testutil.Sine(1000, 0.8, int(sr), 8192)
	out, err := stage.Process(monoBuffer(t, in), 0.5)
	require.NoError(t, err)
	require.Equal(t, len(in), out.Frames())
	testutil.AssertNoNaNOrInf(t, out.Data[0])
	// tanh keeps the saturated signal under the makeup gain, and the
	// presence band adds at most 10%.
	assert.Less(t, out.Peak(), 1.05*1.1*1.05)

	// Low sample rates drop the 18 kHz low-pass instead of failing.
	low, err := NewMasteringStage(16000, false)
	require.NoError(t, err)
	assert.Nil(t, low.lowPass)
}

type halfReducer struct{}

func (halfReducer) Reduce(samples []float64, _, intensity float64) ([]float64, error) {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v * (1 - intensity/2)
	}
	return out, nil
}

func TestNoiseStage(t *testing.T) {
	stage := NewNoiseStage(halfReducer{}, sr, true)
	assert.Equal(t, NoiseReduction, stage.ID())

	buf := stereoBuffer(t, []float64{1, 1}, []float64{-1, -1})
	out, err := stage.Process(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, out.Data[0])
	assert.Equal(t, []float64{-0.5, -0.5}, out.Data[1])

	gate := NewNoiseStage(spectral.NewSpectralGate(), sr, false)
	out, err = gate.Process(monoBuffer(t, testutil.Noise(0.1, 3000, 3)), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 3000, out.Frames())
}
