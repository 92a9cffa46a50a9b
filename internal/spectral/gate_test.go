package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

func TestSTFT_UnityReconstruction(t *testing.T) {
	for _, n := range []int{1, 100, 2048, 5000} {
		s := newSTFT(DefaultFrameSize, DefaultHop)
		in := testutil.Noise(0.5, n, uint64(n))

		mags := s.magnitudes(in)
		require.Len(t, mags, s.frameCount(n))

		ones := make([][]float64, len(mags))
		for f := range ones {
			ones[f] = testutil.Constant(1, s.bins)
		}

		out := s.apply(in, ones)
		testutil.AssertSliceInDelta(t, in, out, 1e-12)
	}
}

func TestSpectralGate_ZeroIntensity(t *testing.T) {
	in := testutil.Noise(0.2, 3000, 1)
	out, err := NewSpectralGate().Reduce(in, 16000, 0)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	out[0] = 99
	assert.NotEqual(t, 99.0, in[0])
}

func TestSpectralGate_Silence(t *testing.T) {
	out, err := NewSpectralGate().Reduce(make([]float64, 4000), 16000, 1)
	require.NoError(t, err)
	testutil.AssertAllZero(t, out)

	out, err = NewSpectralGate().Reduce(nil, 16000, 1)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSpectralGate_ImprovesSNR(t *testing.T) {
	const sr = 16000
	noise := testutil.Noise(0.01, sr, 42)
	tone := testutil.Sine(1000, 0.5, sr, sr)

	in := make([]float64, sr)
	for i := range in {
		in[i] = noise[i]
		if i >= sr/2 {
			in[i] += tone[i]
		}
	}

	out, err := NewSpectralGate().Reduce(in, sr, 1)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	testutil.AssertNoNaNOrInf(t, out)

	// Stay clear of the onset and the signal edges.
	quietIn, quietOut := testutil.RMS(in[2048:5500]), testutil.RMS(out[2048:5500])
	loudIn, loudOut := testutil.RMS(in[10000:14000]), testutil.RMS(out[10000:14000])

	assert.Less(t, quietOut, quietIn)
	assert.Greater(t, loudOut/quietOut, loudIn/quietIn)
}

func TestSpectralGate_Invalid(t *testing.T) {
	g := NewSpectralGate()
	_, err := g.Reduce([]float64{1}, 0, 0.5)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = g.Reduce([]float64{1}, 16000, 1.5)
	require.ErrorIs(t, err, ErrInvalidInput)

	g.Hop = 0
	_, err = g.Reduce([]float64{1}, 16000, 0.5)
	require.ErrorIs(t, err, ErrInvalidInput)
}
