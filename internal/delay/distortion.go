package delay

import (
	"fmt"
	"math"
)

// Mode selects the distortion transfer curve.
type Mode int

const (
	SoftClip Mode = iota
	HardClip
	Tube
	Fuzz
)

var modeNames = [...]string{"soft", "hard", "tube", "fuzz"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "soft", "hard", "tube" or "fuzz" to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown distortion mode %q", ErrInvalidParams, name)
}

// DistortionParams configures the waveshaper.
type DistortionParams struct {
	Mode  Mode
	Drive float64
	Mix   float64
}

// DefaultDistortionParams returns a soft-clip at drive 2 mixed at 30%.
func DefaultDistortionParams() DistortionParams {
	return DistortionParams{Mode: SoftClip, Drive: DefaultDrive, Mix: DefaultDriveMix}
}

// Validate checks parameter ranges.
func (p DistortionParams) Validate() error {
	if !(p.Drive > 0) || math.IsInf(p.Drive, 0) {
		return fmt.Errorf("%w: drive must be positive, got %v", ErrInvalidParams, p.Drive)
	}
	if !(p.Mix >= 0 && p.Mix <= 1) {
		return fmt.Errorf("%w: mix must be in [0, 1], got %v", ErrInvalidParams, p.Mix)
	}
	if p.Mode < SoftClip || p.Mode > Fuzz {
		return fmt.Errorf("%w: unknown distortion mode %d", ErrInvalidParams, int(p.Mode))
	}
	return nil
}

// Shape applies the transfer curve to one driven sample.
func (m Mode) Shape(x float64) float64 {
	switch m {
	case HardClip:
		return math.Max(-1, math.Min(1, x))
	case Tube:
		return math.Copysign(1-math.Exp(-math.Abs(x)), x)
	case Fuzz:
		return math.Copysign(1-math.Exp(-2*math.Abs(x)), x)
	default:
		return math.Tanh(x)
	}
}

// Distort drives one channel into the waveshaper and mixes with the dry signal.
func Distort(samples []float64, p DistortionParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	dry := 1 - p.Mix
	for i, x := range samples {
		out[i] = x*dry + p.Mode.Shape(x*p.Drive)*p.Mix
	}
	return out, nil
}
