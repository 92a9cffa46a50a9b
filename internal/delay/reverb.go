package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// ErrInvalidParams is returned for effect parameters outside their range.
var ErrInvalidParams = errors.New("invalid effect parameters")

// Tap is one reverb reflection: a delay in seconds and its gain.
type Tap struct {
	Delay float64
	Decay float64
}

// AdvancedTaps returns the six-tap reflection set (30 to 130 ms).
func AdvancedTaps() []Tap {
	return []Tap{
		{0.03, 0.7},
		{0.05, 0.6},
		{0.07, 0.5},
		{0.09, 0.4},
		{0.11, 0.3},
		{0.13, 0.2},
	}
}

// BasicTaps returns the three-tap set at 50, 100 and 150 ms with decays 0.6^k.
func BasicTaps() []Tap {
	taps := make([]Tap, basicTapCount)
	for k := range taps {
		taps[k] = Tap{
			Delay: basicTapSpacing * float64(k+1),
			Decay: math.Pow(basicTapDecay, float64(k+1)),
		}
	}
	return taps
}

// ReverbParams configures the multi-tap reverb.
type ReverbParams struct {
	Taps             []Tap
	RoomSize         float64 // scales every tap delay
	Damping          float64 // tap gain is multiplied by 1-Damping
	WetLevel         float64
	EarlyReflections bool
	ToneHz           float64 // low-pass cutoff for the wet bus, 0 disables
}

// DefaultReverbParams returns the advanced tap set with the usual room.
func DefaultReverbParams() ReverbParams {
	return ReverbParams{
		Taps:             AdvancedTaps(),
		RoomSize:         DefaultRoomSize,
		Damping:          DefaultDamping,
		WetLevel:         DefaultWetLevel,
		EarlyReflections: true,
	}
}

// Validate checks parameter ranges.
func (p ReverbParams) Validate() error {
	if !(p.RoomSize >= 0) || math.IsInf(p.RoomSize, 0) {
		return fmt.Errorf("%w: room size must be non-negative, got %v", ErrInvalidParams, p.RoomSize)
	}
	if !(p.Damping >= 0 && p.Damping <= 1) {
		return fmt.Errorf("%w: damping must be in [0, 1], got %v", ErrInvalidParams, p.Damping)
	}
	if !(p.WetLevel >= 0 && p.WetLevel <= 1) {
		return fmt.Errorf("%w: wet level must be in [0, 1], got %v", ErrInvalidParams, p.WetLevel)
	}
	if !(p.ToneHz >= 0) {
		return fmt.Errorf("%w: tone cutoff must be non-negative, got %v", ErrInvalidParams, p.ToneHz)
	}
	for i, tap := range p.Taps {
		if !(tap.Delay >= 0) || math.IsInf(tap.Delay, 0) || math.IsNaN(tap.Decay) {
			return fmt.Errorf("%w: tap %d has delay %v, decay %v", ErrInvalidParams, i, tap.Delay, tap.Decay)
		}
	}
	return nil
}

// Reverb applies the multi-tap reverb to one channel and returns a new slice.
// Taps whose delay reaches the end of the buffer are skipped.
func Reverb(samples []float64, sampleRate float64, p ReverbParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParams, sampleRate)
	}

	n := len(samples)
	wet := make([]float64, n)

	for _, tap := range p.Taps {
		addShifted(wet, samples, tap.Delay*sampleRate*p.RoomSize, tap.Decay*(1-p.Damping))
	}

	if p.EarlyReflections {
		addShifted(wet, samples, earlyReflectionDelay*sampleRate, earlyReflectionGain)
	}

	if p.ToneHz > 0 {
		c, err := biquad.Design(biquad.Spec{Type: biquad.LowPass, Frequency: p.ToneHz, Q: biquad.ButterworthQ}, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w: tone filter: %w", ErrInvalidParams, err)
		}
		biquad.NewSection(c).ProcessBlock(wet)
	}

	out := make([]float64, n)
	simdops.Mix(out, samples, wet, p.WetLevel)
	return out, nil
}

// addShifted accumulates gain·x delayed by int(delay) samples into dst.
// Delays that reach the end of x add nothing.
func addShifted(dst, x []float64, delay, gain float64) {
	if !(delay < float64(len(x))) {
		return
	}
	shift := max(int(delay), 0)
	simdops.AddScaled(dst[shift:], gain, x[:len(x)-shift])
}
