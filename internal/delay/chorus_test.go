package delay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

func TestChorus_PreservesLength(t *testing.T) {
	in := testutil.Sine(440, 0.5, 44100, 22050)
	out, err := Chorus(in, 44100, DefaultChorusParams())
	require.NoError(t, err)
	assert.Len(t, out, len(in))
	testutil.AssertNoNaNOrInf(t, out)
}

func TestChorus_Silence(t *testing.T) {
	out, err := Chorus(make([]float64, 4096), 44100, DefaultChorusParams())
	require.NoError(t, err)
	testutil.AssertAllZero(t, out)

	empty, err := Chorus(nil, 44100, DefaultChorusParams())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChorus_ZeroDepthIsFixedDelay(t *testing.T) {
	const rate = 1000.0
	p := ChorusParams{Rate: 1, Depth: 0, Mix: 1, Voices: 2, BaseDelay: 0.005}
	in := testutil.Noise(0.5, 64, 9)

	out, err := Chorus(in, rate, p)
	require.NoError(t, err)

	for i := range in {
		want := 0.0
		if i >= 5 {
			want = in[i-5]
		}
		assert.InDelta(t, want, out[i], 1e-15, "sample %d", i)
	}
}

func TestChorus_ReadsRoundedDelay(t *testing.T) {
	const rate = 1000.0
	p := ChorusParams{Rate: 10, Depth: 0.002, Mix: 1, Voices: 1, BaseDelay: 0.004}
	in := testutil.Noise(1, 200, 4)

	out, err := Chorus(in, rate, p)
	require.NoError(t, err)

	step := 2 * math.Pi * 10 / rate
	for i := range in {
		d := int(math.Round(4 + 2*math.Sin(step*float64(i))))
		want := 0.0
		if i-d >= 0 {
			want = in[i-d]
		}
		assert.InDelta(t, want, out[i], 1e-15, "sample %d", i)
	}
}

func TestChorus_DelayLongerThanInput(t *testing.T) {
	in := testutil.Noise(0.5, 32, 6)

	for _, base := range []float64{0.05, 1e12, 1e300} {
		p := ChorusParams{Rate: 1, Depth: base / 2, Mix: 0.4, Voices: 3, BaseDelay: base}
		out, err := Chorus(in, 1000, p)
		require.NoError(t, err)
		require.Len(t, out, len(in))
		for i := range in {
			assert.InDelta(t, 0.6*in[i], out[i], 1e-15, "base %v sample %d", base, i)
		}
	}
}

func TestChorus_MixZeroIsDry(t *testing.T) {
	p := DefaultChorusParams()
	p.Mix = 0
	in := testutil.Noise(0.5, 1000, 5)
	out, err := Chorus(in, 44100, p)
	require.NoError(t, err)
	testutil.AssertSliceInDelta(t, in, out, 0)
}

func TestChorus_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    ChorusParams
	}{
		{"no voices", ChorusParams{Voices: 0, BaseDelay: 0.02}},
		{"depth beyond base", ChorusParams{Voices: 1, BaseDelay: 0.01, Depth: 0.02}},
		{"negative rate", ChorusParams{Voices: 1, BaseDelay: 0.02, Rate: -1}},
		{"mix above one", ChorusParams{Voices: 1, BaseDelay: 0.02, Mix: 1.5}},
		{"zero base", ChorusParams{Voices: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Chorus([]float64{1}, 44100, tt.p)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func BenchmarkChorus(b *testing.B) {
	in := testutil.Sine(440, 0.5, 44100, 44100)
	p := DefaultChorusParams()

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Chorus(in, 44100, p)
	}
}
