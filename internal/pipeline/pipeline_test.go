package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

// funcStage adapts a function to Stage.
type funcStage struct {
	id StageID
	fn func(*audio.Buffer, float64) (*audio.Buffer, error)
}

func (s funcStage) ID() StageID { return s.id }

func (s funcStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	return s.fn(buf, intensity)
}

func gainStage(id StageID, g float64, calls *[]StageID) Stage {
	return funcStage{id: id, fn: func(buf *audio.Buffer, _ float64) (*audio.Buffer, error) {
		*calls = append(*calls, id)
		buf.Scale(g)
		return buf, nil
	}}
}

func monoBuffer(t *testing.T, samples []float64) *audio.Buffer {
	t.Helper()
	buf, err := audio.FromChannels([][]float64{samples})
	require.NoError(t, err)
	return buf
}

func TestChain_RunsInFixedOrder(t *testing.T) {
	var calls []StageID
	var stages []Stage
	for i := len(Order) - 1; i >= 0; i-- {
		stages = append(stages, gainStage(Order[i], 1, &calls))
	}

	log, _ := test.NewNullLogger()
	chain := NewChain(log, stages...)
	assert.Equal(t, Order, chain.Stages())

	var s Settings
	for _, id := range Order {
		s.Set(id, 0.5)
	}
	_, err := chain.Run(monoBuffer(t, []float64{0.1, 0.2}), s)
	require.NoError(t, err)
	assert.Equal(t, Order, calls)
}

func TestChain_SkipsZeroIntensity(t *testing.T) {
	var calls []StageID
	log, _ := test.NewNullLogger()
	chain := NewChain(log,
		gainStage(VocalEnhance, 2, &calls),
		gainStage(BassBoost, 2, &calls),
	)

	_, err := chain.Run(monoBuffer(t, []float64{0.1}), Settings{BassBoost: 0.3})
	require.NoError(t, err)
	assert.Equal(t, []StageID{BassBoost}, calls)
}

func TestChain_AllDisabledIsIdentity(t *testing.T) {
	in := testutil.Noise(0.3, 1000, 1)
	buf := monoBuffer(t, in)

	log, _ := test.NewNullLogger()
	out, err := NewChain(log).Run(buf, Settings{})
	require.NoError(t, err)
	assert.True(t, buf.Equal(out))
	assert.NotSame(t, buf, out)
}

func TestChain_Normalizes(t *testing.T) {
	var calls []StageID
	log, _ := test.NewNullLogger()
	chain := NewChain(log, gainStage(Mastering, 3, &calls))

	out, err := chain.Run(monoBuffer(t, []float64{0.1, -0.2, 0.05}), Settings{Mastering: 1})
	require.NoError(t, err)
	assert.InDelta(t, NormalizePeak, out.Peak(), 1e-12)
	assert.InDelta(t, -NormalizePeak, out.Data[0][1], 1e-12)
}

func TestChain_SilenceStaysSilent(t *testing.T) {
	log, _ := test.NewNullLogger()
	var calls []StageID
	chain := NewChain(log, gainStage(Compression, 2, &calls))

	out, err := chain.Run(monoBuffer(t, make([]float64, 64)), Settings{Compression: 1})
	require.NoError(t, err)
	testutil.AssertAllZero(t, out.Data[0])
}

func TestChain_RecoversFromFailures(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
	}{
		{"error", funcStage{id: BassBoost, fn: func(*audio.Buffer, float64) (*audio.Buffer, error) {
			return nil, errors.New("bad filter")
		}}},
		{"panic", funcStage{id: BassBoost, fn: func(*audio.Buffer, float64) (*audio.Buffer, error) {
			panic("index out of range")
		}}},
		{"nil buffer", funcStage{id: BassBoost, fn: func(*audio.Buffer, float64) (*audio.Buffer, error) {
			return nil, nil
		}}},
		{"shape change", funcStage{id: BassBoost, fn: func(buf *audio.Buffer, _ float64) (*audio.Buffer, error) {
			buf.Data[0] = buf.Data[0][:1]
			return buf, nil
		}}},
		{"nan output", funcStage{id: BassBoost, fn: func(buf *audio.Buffer, _ float64) (*audio.Buffer, error) {
			buf.Data[0][1] = math.NaN()
			return buf, nil
		}}},
		{"mutates then fails", funcStage{id: BassBoost, fn: func(buf *audio.Buffer, _ float64) (*audio.Buffer, error) {
			buf.Scale(100)
			return nil, errors.New("late failure")
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			var calls []StageID
			chain := NewChain(log, tt.stage, gainStage(Mastering, 2, &calls))

			in := monoBuffer(t, []float64{0.5, -0.25})
			out, err := chain.Run(in, Settings{BassBoost: 1, Mastering: 1})
			require.NoError(t, err)

			// Mastering still ran on the forwarded input.
			assert.Equal(t, []StageID{Mastering}, calls)
			assert.InDelta(t, 0.95, out.Data[0][0], 1e-12)
			assert.InDelta(t, -0.475, out.Data[0][1], 1e-12)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Equal(t, "bass_boost", entry.Data["stage"])
			assert.Contains(t, entry.Data, "error")
		})
	}
}

func TestChain_RejectsMalformedBuffer(t *testing.T) {
	var calls []StageID
	log, _ := test.NewNullLogger()
	chain := NewChain(log, gainStage(BassBoost, 1, &calls))

	bad := &audio.Buffer{Layout: audio.Stereo, Data: [][]float64{{1, 2}, {1}}}
	_, err := chain.Run(bad, Settings{BassBoost: 1})
	require.ErrorIs(t, err, audio.ErrInvalidShape)
	assert.Empty(t, calls)
}

func TestNormalize_Idempotent(t *testing.T) {
	buf := monoBuffer(t, testutil.Noise(0.4, 500, 3))
	Normalize(buf)
	once := buf.Clone()
	Normalize(buf)
	testutil.AssertSliceInDelta(t, once.Data[0], buf.Data[0], 1e-15)
	assert.InDelta(t, NormalizePeak, buf.Peak(), 1e-15)
}

func TestStageID(t *testing.T) {
	for _, id := range Order {
		got, ok := ParseStageID(id.String())
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
	_, ok := ParseStageID("auto_tune")
	assert.False(t, ok)
	assert.Equal(t, "StageID(42)", StageID(42).String())
}
