package pipeline

import (
	"fmt"

	"github.com/tphakala/go-audio-enhancer/internal/mathutil"
)

// Settings holds one intensity in [0, 1] per stage. Zero disables a stage.
type Settings struct {
	NoiseReduction float64 `toml:"noise_reduction"`
	VocalEnhance   float64 `toml:"vocal_enhance"`
	BassBoost      float64 `toml:"bass_boost"`
	TrebleEnhance  float64 `toml:"treble_enhance"`
	StereoEnhance  float64 `toml:"stereo_enhance"`
	WarmthFilter   float64 `toml:"warmth_filter"`
	Compression    float64 `toml:"compression"`
	Mastering      float64 `toml:"mastering"`
}

// field returns a pointer to the intensity for id, or nil.
func (s *Settings) field(id StageID) *float64 {
	switch id {
	case NoiseReduction:
		return &s.NoiseReduction
	case VocalEnhance:
		return &s.VocalEnhance
	case BassBoost:
		return &s.BassBoost
	case TrebleEnhance:
		return &s.TrebleEnhance
	case StereoEnhance:
		return &s.StereoEnhance
	case WarmthFilter:
		return &s.WarmthFilter
	case Compression:
		return &s.Compression
	case Mastering:
		return &s.Mastering
	default:
		return nil
	}
}

// Get returns the intensity for id. Unknown stages report 0.
func (s Settings) Get(id StageID) float64 {
	if p := s.field(id); p != nil {
		return *p
	}
	return 0
}

// Set stores the intensity for id. Unknown stages are ignored.
func (s *Settings) Set(id StageID, v float64) {
	if p := s.field(id); p != nil {
		*p = v
	}
}

// AllDisabled reports whether every stage intensity is zero.
func (s Settings) AllDisabled() bool {
	for _, id := range Order {
		if s.Get(id) != 0 {
			return false
		}
	}
	return true
}

// Validate checks that every intensity is finite and within [0, 1].
func (s Settings) Validate() error {
	for _, id := range Order {
		if v := s.Get(id); !mathutil.InUnitInterval(v) {
			return fmt.Errorf("%s intensity must be in [0, 1], got %v", id, v)
		}
	}
	return nil
}

// ParseSettings builds Settings from snake_case stage names. Unknown keys
// are ignored and missing keys stay 0.
func ParseSettings(m map[string]float64) Settings {
	var s Settings
	for key, v := range m {
		if id, ok := ParseStageID(key); ok {
			s.Set(id, v)
		}
	}
	return s
}

// Map returns the settings keyed by stage name.
func (s Settings) Map() map[string]float64 {
	m := make(map[string]float64, len(Order))
	for _, id := range Order {
		m[id.String()] = s.Get(id)
	}
	return m
}
