package biquad

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec is returned for filter specs that cannot be designed.
var ErrInvalidSpec = errors.New("invalid filter spec")

// Type selects the filter response.
type Type int

const (
	Peaking Type = iota
	LowShelf
	HighShelf
	LowPass
	HighPass
	BandPass
)

var typeNames = [...]string{"peaking", "lowshelf", "highshelf", "lowpass", "highpass", "bandpass"}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a name like "peaking" or "highpass" to its Type.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter type %q", ErrInvalidSpec, name)
}

// Spec describes one filter: center or cutoff frequency, gain and Q.
// GainDB is ignored by the pass types.
type Spec struct {
	Type      Type
	Frequency float64
	GainDB    float64
	Q         float64
}

// Validate checks the spec against the sample rate.
func (s Spec) Validate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidSpec, sampleRate)
	}
	nyquist := sampleRate / 2
	if !(s.Frequency > 0) || s.Frequency >= nyquist {
		return fmt.Errorf("%w: frequency %v Hz outside (0, %v)", ErrInvalidSpec, s.Frequency, nyquist)
	}
	if !(s.Q > 0) || math.IsInf(s.Q, 0) {
		return fmt.Errorf("%w: Q must be positive, got %v", ErrInvalidSpec, s.Q)
	}
	if math.IsNaN(s.GainDB) || math.IsInf(s.GainDB, 0) {
		return fmt.Errorf("%w: gain must be finite, got %v", ErrInvalidSpec, s.GainDB)
	}
	if s.Type < Peaking || s.Type > BandPass {
		return fmt.Errorf("%w: unknown filter type %d", ErrInvalidSpec, int(s.Type))
	}
	return nil
}

// Design computes normalized coefficients for spec at sampleRate.
func Design(spec Spec, sampleRate float64) (Coefficients, error) {
	if err := spec.Validate(sampleRate); err != nil {
		return Coefficients{}, err
	}

	w := 2 * math.Pi * spec.Frequency / sampleRate
	cosw, sinw := math.Cos(w), math.Sin(w)
	alpha := sinw / (2 * spec.Q)

	var b0, b1, b2, a0, a1, a2 float64

	switch spec.Type {
	case Peaking:
		a := math.Pow(10, spec.GainDB/peakGainDivisor)
		b0 = 1 + alpha*a
		b1 = -2 * cosw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosw
		a2 = 1 - alpha/a

	case LowShelf:
		a := math.Pow(10, spec.GainDB/shelfGainDivisor)
		sq := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cosw + sq)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - sq)
		a0 = (a + 1) + (a-1)*cosw + sq
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - sq

	case HighShelf:
		a := math.Pow(10, spec.GainDB/shelfGainDivisor)
		sq := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cosw + sq)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - sq)
		a0 = (a + 1) - (a-1)*cosw + sq
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - sq

	case LowPass:
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha

	case HighPass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha

	case BandPass:
		// Constant 0 dB peak gain.
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosw
		a2 = 1 - alpha
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}

// MustDesign is like Design but panics on error. It is intended for
// compile-time constant specs.
func MustDesign(spec Spec, sampleRate float64) Coefficients {
	c, err := Design(spec, sampleRate)
	if err != nil {
		panic(err)
	}
	return c
}
