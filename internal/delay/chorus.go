package delay

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// ChorusParams configures the LFO chorus. Times are in seconds.
type ChorusParams struct {
	Rate      float64 // LFO rate in Hz for voice 0
	Depth     float64 // LFO swing in seconds
	Mix       float64
	Voices    int
	BaseDelay float64
}

// DefaultChorusParams returns the three-voice chorus.
func DefaultChorusParams() ChorusParams {
	return ChorusParams{
		Rate:      DefaultChorusRate,
		Depth:     DefaultDepth,
		Mix:       DefaultChorusMix,
		Voices:    DefaultVoices,
		BaseDelay: DefaultBaseDelay,
	}
}

// Validate checks parameter ranges. Depth may not exceed BaseDelay, since
// that would need samples that have not arrived yet.
func (p ChorusParams) Validate() error {
	if !(p.Rate >= 0) || math.IsInf(p.Rate, 0) {
		return fmt.Errorf("%w: rate must be non-negative, got %v", ErrInvalidParams, p.Rate)
	}
	if p.Voices < 1 {
		return fmt.Errorf("%w: need at least one voice, got %d", ErrInvalidParams, p.Voices)
	}
	if !(p.Mix >= 0 && p.Mix <= 1) {
		return fmt.Errorf("%w: mix must be in [0, 1], got %v", ErrInvalidParams, p.Mix)
	}
	if !(p.BaseDelay > 0) || math.IsInf(p.BaseDelay, 0) {
		return fmt.Errorf("%w: base delay must be positive, got %v", ErrInvalidParams, p.BaseDelay)
	}
	if !(p.Depth >= 0) || p.Depth > p.BaseDelay {
		return fmt.Errorf("%w: depth %v must be in [0, base delay %v]", ErrInvalidParams, p.Depth, p.BaseDelay)
	}
	return nil
}

// Chorus applies the chorus to one channel and returns a new slice.
//
// Voice v runs its LFO at Rate·(1+0.1v) with phase 2πv/Voices. For each
// output sample the delay is recomputed and the input read back through a
// delay line; reads before the start of the signal are silent.
func Chorus(samples []float64, sampleRate float64, p ChorusParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParams, sampleRate)
	}

	n := len(samples)
	base := p.BaseDelay * sampleRate
	swing := p.Depth * sampleRate
	// Delays beyond the input length always read silence, so the line never
	// needs more than n+1 slots.
	line := NewLine(int(math.Min(math.Ceil(base+swing)+2, float64(n+1))))

	type lfo struct{ step, phase float64 }
	voices := make([]lfo, p.Voices)
	for v := range voices {
		rate := p.Rate * (1 + voiceRateSpread*float64(v))
		voices[v] = lfo{
			step:  2 * math.Pi * rate / sampleRate,
			phase: 2 * math.Pi * float64(v) / float64(p.Voices),
		}
	}

	wet := make([]float64, n)
	inv := 1 / float64(p.Voices)

	for i, x := range samples {
		line.Write(x)
		var acc float64
		for _, lf := range voices {
			d := math.Round(base + swing*math.Sin(lf.step*float64(i)+lf.phase))
			if d > float64(i) {
				continue
			}
			acc += line.Tap(int(d))
		}
		wet[i] = acc * inv
	}

	out := make([]float64, n)
	simdops.Mix(out, samples, wet, p.Mix)
	return out, nil
}
