// Package stereo implements mid/side processing: frequency-dependent
// widening and center/side extraction.
package stereo

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// ErrLengthMismatch is returned when left and right differ in length.
var ErrLengthMismatch = errors.New("stereo channels differ in length")

// MidSide returns mid=(L+R)/2 and side=(L-R)/2.
func MidSide(left, right []float64) (mid, side []float64, err error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(left), len(right))
	}
	mid = make([]float64, len(left))
	side = make([]float64, len(left))
	for i := range left {
		mid[i] = (left[i] + right[i]) / 2
		side[i] = (left[i] - right[i]) / 2
	}
	return mid, side, nil
}

// FromMidSide returns L=mid+side and R=mid-side.
func FromMidSide(mid, side []float64) (left, right []float64, err error) {
	if len(mid) != len(side) {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(mid), len(side))
	}
	left = make([]float64, len(mid))
	right = make([]float64, len(mid))
	for i := range mid {
		left[i] = mid[i] + side[i]
		right[i] = mid[i] - side[i]
	}
	return left, right, nil
}

// WidenBand is one slice of the side signal and its widening weight.
type WidenBand struct {
	Filter biquad.Type // LowPass, HighPass or BandPass
	Low    float64     // cutoff for LowPass/HighPass, lower edge for BandPass
	High   float64     // upper edge for BandPass
	Order  int
	Weight float64
}

// DefaultWidenBands splits the side signal into four bands, widening the
// presence range most and the lows least.
func DefaultWidenBands() []WidenBand {
	return []WidenBand{
		{Filter: biquad.LowPass, Low: 200, Order: 4, Weight: 0.2},
		{Filter: biquad.BandPass, Low: 200, High: 2000, Order: 4, Weight: 0.6},
		{Filter: biquad.BandPass, Low: 2000, High: 8000, Order: 4, Weight: 1.0},
		{Filter: biquad.HighPass, Low: 8000, Order: 4, Weight: 0.4},
	}
}

// design returns the cascade for the band at sampleRate, or nil if the band
// does not fit below 0.9·Nyquist.
func (b WidenBand) design(sampleRate float64) (*biquad.Cascade, error) {
	sections := max(1, b.Order/2)
	switch b.Filter {
	case biquad.BandPass:
		band, ok := biquad.FitBand(biquad.Band{Low: b.Low, High: b.High, Order: b.Order}, sampleRate)
		if !ok {
			return nil, nil
		}
		return band.Design(sampleRate)
	default:
		if !biquad.FitFrequency(b.Low, sampleRate) {
			return nil, nil
		}
		c, err := biquad.Design(biquad.Spec{Type: b.Filter, Frequency: b.Low, Q: biquad.ButterworthQ}, sampleRate)
		if err != nil {
			return nil, err
		}
		return biquad.NewCascade(c, sections), nil
	}
}

// Widener scales the side signal per band by 1+intensity·weight.
type Widener struct {
	Bands []WidenBand
}

// NewWidener returns a widener over the default bands.
func NewWidener() *Widener {
	return &Widener{Bands: DefaultWidenBands()}
}

// Widen returns widened copies of left and right. At intensity 0 the inputs
// are returned unchanged. Identical channels have zero side and stay
// identical.
func (w *Widener) Widen(left, right []float64, intensity, sampleRate float64) ([]float64, []float64, error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(left), len(right))
	}
	if intensity == 0 {
		return left, right, nil
	}

	mid, side, err := MidSide(left, right)
	if err != nil {
		return nil, nil, err
	}

	enhanced := make([]float64, len(side))
	for _, b := range w.Bands {
		casc, err := b.design(sampleRate)
		if err != nil {
			return nil, nil, err
		}
		if casc == nil {
			continue
		}
		simdops.AddScaled(enhanced, 1+intensity*b.Weight, casc.Apply(side))
	}

	return FromMidSide(mid, enhanced)
}

// Widen applies the default widener.
func Widen(left, right []float64, intensity, sampleRate float64) ([]float64, []float64, error) {
	return NewWidener().Widen(left, right, intensity, sampleRate)
}

// IsolationMode selects what Isolate extracts.
type IsolationMode int

const (
	// Center keeps (L+R)/2, the vocal-forward mix.
	Center IsolationMode = iota
	// Karaoke keeps (L-R)/2, removing center-panned vocals.
	Karaoke
	// Spectral is center extraction with the highs attenuated in the
	// frequency domain. It is implemented by the spectral package.
	Spectral
)

var isolationNames = [...]string{"center", "karaoke", "spectral"}

func (m IsolationMode) String() string {
	if m >= 0 && int(m) < len(isolationNames) {
		return isolationNames[m]
	}
	return fmt.Sprintf("IsolationMode(%d)", int(m))
}

// ParseIsolationMode maps "center", "karaoke" or "spectral" to a mode.
func ParseIsolationMode(name string) (IsolationMode, error) {
	for i, n := range isolationNames {
		if n == name {
			return IsolationMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown isolation mode %q", name)
}

// Isolate extracts the center or side signal and returns it on both
// channels. Spectral mode is not handled here.
func Isolate(left, right []float64, mode IsolationMode) ([]float64, []float64, error) {
	mid, side, err := MidSide(left, right)
	if err != nil {
		return nil, nil, err
	}
	switch mode {
	case Center:
		return mid, append([]float64(nil), mid...), nil
	case Karaoke:
		return side, append([]float64(nil), side...), nil
	default:
		return nil, nil, fmt.Errorf("isolation mode %v needs the spectral package", mode)
	}
}
