package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	s := ParseSettings(map[string]float64{
		"bass_boost":  0.5,
		"mastering":   0.8,
		"auto_tune":   1.0, // ignored
		"Bass_Boost":  0.9, // keys are case-sensitive
		"compression": 0,
	})

	assert.InDelta(t, 0.5, s.BassBoost, 0)
	assert.InDelta(t, 0.8, s.Mastering, 0)
	assert.InDelta(t, 0.0, s.NoiseReduction, 0)
	assert.False(t, s.AllDisabled())
	assert.True(t, Settings{}.AllDisabled())

	m := s.Map()
	assert.Len(t, m, len(Order))
	assert.InDelta(t, 0.5, m["bass_boost"], 0)
	assert.Equal(t, s, ParseSettings(m))
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, Settings{}.Validate())
	require.NoError(t, Settings{NoiseReduction: 1, Mastering: 0.3}.Validate())

	for _, v := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		err := Settings{WarmthFilter: v}.Validate()
		require.Error(t, err, "value %v", v)
		assert.Contains(t, err.Error(), "warmth_filter")
	}
}

func TestSettings_GetSetUnknown(t *testing.T) {
	var s Settings
	s.Set(StageID(99), 1)
	assert.True(t, s.AllDisabled())
	assert.InDelta(t, 0.0, s.Get(StageID(99)), 0)
}
