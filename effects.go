package enhancer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/delay"
	"github.com/tphakala/go-audio-enhancer/internal/mathutil"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
	"github.com/tphakala/go-audio-enhancer/internal/spectral"
	"github.com/tphakala/go-audio-enhancer/internal/stereo"
)

// Standalone effects. Each one takes a buffer, leaves it untouched and
// returns a new buffer of the same shape. They are not part of the
// enhancement chain.

// FilterSpec describes one parametric EQ band.
type FilterSpec = biquad.Spec

// FilterType selects the biquad response.
type FilterType = biquad.Type

// Filter types.
const (
	Peaking   = biquad.Peaking
	LowShelf  = biquad.LowShelf
	HighShelf = biquad.HighShelf
	LowPass   = biquad.LowPass
	HighPass  = biquad.HighPass
	BandPass  = biquad.BandPass
)

// ReverbParams configures Reverb.
type ReverbParams = delay.ReverbParams

// ChorusParams configures Chorus.
type ChorusParams = delay.ChorusParams

// DistortionParams configures Distort.
type DistortionParams = delay.DistortionParams

// DistortionMode selects the waveshaper curve.
type DistortionMode = delay.Mode

// Distortion modes.
const (
	SoftClip = delay.SoftClip
	HardClip = delay.HardClip
	Tube     = delay.Tube
	Fuzz     = delay.Fuzz
)

// IsolationMode selects how IsolateVocals extracts the vocal.
type IsolationMode = stereo.IsolationMode

// Isolation modes.
const (
	IsolateCenterMode   = stereo.Center
	IsolateKaraokeMode  = stereo.Karaoke
	IsolateSpectralMode = stereo.Spectral
)

// ParseFilterType maps "peaking", "lowshelf", "highshelf", "lowpass",
// "highpass" or "bandpass" to its FilterType.
func ParseFilterType(name string) (FilterType, error) {
	t, err := biquad.ParseType(name)
	return t, effectError(err)
}

// ParseDistortionMode maps "soft", "hard", "tube" or "fuzz" to its mode.
func ParseDistortionMode(name string) (DistortionMode, error) {
	m, err := delay.ParseMode(name)
	return m, effectError(err)
}

// ParseIsolationMode maps "center", "karaoke" or "spectral" to its mode.
func ParseIsolationMode(name string) (IsolationMode, error) {
	m, err := stereo.ParseIsolationMode(name)
	return m, effectError(err)
}

// DefaultReverbParams returns the six-tap room reverb.
func DefaultReverbParams() ReverbParams { return delay.DefaultReverbParams() }

// DefaultChorusParams returns the three-voice chorus.
func DefaultChorusParams() ChorusParams { return delay.DefaultChorusParams() }

// DefaultDistortionParams returns a soft clipper at drive 2, 30% wet.
func DefaultDistortionParams() DistortionParams { return delay.DefaultDistortionParams() }

// checkBuffer rejects nil and malformed buffers.
func checkBuffer(buf *Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: buffer is nil", ErrInvalidShape)
	}
	return buf.Validate()
}

// effectError tags a parameter error from an effect package.
func effectError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidEffect, err)
}

// ParametricEQ applies bands in series to every channel. Peaking and
// shelving bands with 0 dB gain are skipped.
func ParametricEQ(buf *Buffer, sampleRate float64, bands []FilterSpec) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}

	coeffs := make([]biquad.Coefficients, 0, len(bands))
	for _, spec := range bands {
		if spec.GainDB == 0 && (spec.Type == Peaking || spec.Type == LowShelf || spec.Type == HighShelf) {
			continue
		}
		c, err := biquad.Design(spec, sampleRate)
		if err != nil {
			return nil, effectError(err)
		}
		coeffs = append(coeffs, c)
	}

	return buf.MapChannels(false, func(x []float64) ([]float64, error) {
		out := append([]float64(nil), x...)
		for _, c := range coeffs {
			biquad.NewSection(c).ProcessBlock(out)
		}
		return out, nil
	})
}

// IsolateVocals extracts the center (vocal) or side (karaoke) signal of a
// stereo buffer onto both channels. Spectral mode takes the FFT of the
// center signal and halves everything above 4 kHz. Mono buffers are
// returned as a copy.
func IsolateVocals(buf *Buffer, sampleRate float64, mode IsolationMode) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if !buf.IsStereo() {
		return buf.Clone(), nil
	}

	left, right := buf.Data[0], buf.Data[1]
	if mode == IsolateSpectralMode {
		center, err := spectral.IsolateCenter(left, right, sampleRate)
		if err != nil {
			return nil, effectError(err)
		}
		return audio.FromChannels([][]float64{center, append([]float64(nil), center...)})
	}

	l, r, err := stereo.Isolate(left, right, mode)
	if err != nil {
		return nil, effectError(err)
	}
	return audio.FromChannels([][]float64{l, r})
}

// NormalizePeak scales buf so its absolute peak sits at targetDB dBFS.
// Silence is returned unchanged.
func NormalizePeak(buf *Buffer, targetDB float64) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if !mathutil.IsFinite(targetDB) {
		return nil, fmt.Errorf("%w: target level must be finite, got %v", ErrInvalidEffect, targetDB)
	}

	out := buf.Clone()
	if peak := out.Peak(); peak > 0 {
		out.Scale(mathutil.DBToLinear(targetDB) / peak)
	}
	return out, nil
}

// NormalizeRMS scales buf so the RMS over all channels is targetDB dBFS,
// then clips to [-1, 1]. Silence is returned unchanged.
func NormalizeRMS(buf *Buffer, targetDB float64) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if !mathutil.IsFinite(targetDB) {
		return nil, fmt.Errorf("%w: target level must be finite, got %v", ErrInvalidEffect, targetDB)
	}

	out := buf.Clone()
	var energy float64
	var n int
	for _, ch := range out.Data {
		energy += simdops.Energy(ch)
		n += len(ch)
	}
	if energy == 0 || n == 0 {
		return out, nil
	}

	rms := math.Sqrt(energy / float64(n))
	out.Scale(mathutil.DBToLinear(targetDB) / rms)
	for _, ch := range out.Data {
		for i, v := range ch {
			ch[i] = mathutil.Clamp(v, -rmsClipLimit, rmsClipLimit)
		}
	}
	return out, nil
}

// FadeCurve is the gain shape of a fade.
type FadeCurve int

const (
	// FadeLinear ramps gain linearly.
	FadeLinear FadeCurve = iota

	// FadeExponential follows exp(t) for t from -5 to 0, so it starts
	// at about 0.0067 rather than silence.
	FadeExponential

	// FadeLogarithmic follows ln(t) for t from 1 to e.
	FadeLogarithmic

	// FadeSine follows a quarter sine.
	FadeSine
)

var fadeCurveNames = [...]string{"linear", "exponential", "logarithmic", "sine"}

func (c FadeCurve) String() string {
	if c >= 0 && int(c) < len(fadeCurveNames) {
		return fadeCurveNames[c]
	}
	return fmt.Sprintf("FadeCurve(%d)", int(c))
}

// ParseFadeCurve maps a curve name to its FadeCurve.
func ParseFadeCurve(name string) (FadeCurve, error) {
	for i, n := range fadeCurveNames {
		if n == name {
			return FadeCurve(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fade curve %q", ErrInvalidEffect, name)
}

// ramp returns n gain values for a fade-in shaped by c.
func (c FadeCurve) ramp(n int) []float64 {
	var lo, hi float64
	switch c {
	case FadeExponential:
		lo, hi = fadeExpFloor, 0
	case FadeLogarithmic:
		lo, hi = 1, math.E
	case FadeSine:
		lo, hi = 0, math.Pi/2
	default:
		lo, hi = 0, 1
	}

	g := make([]float64, n)
	if n == 1 {
		g[0] = lo
	} else {
		floats.Span(g, lo, hi)
	}

	for i, t := range g {
		switch c {
		case FadeExponential:
			g[i] = math.Exp(t)
		case FadeLogarithmic:
			g[i] = math.Log(t)
		case FadeSine:
			g[i] = math.Sin(t)
		}
	}
	return g
}

// Fade applies a fade-in over the first fadeIn seconds and a fade-out over
// the last fadeOut seconds. A fade is skipped when its length is zero or
// not shorter than the buffer.
func Fade(buf *Buffer, sampleRate, fadeIn, fadeOut float64, curve FadeCurve) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if !(sampleRate > 0) || !(fadeIn >= 0) || !(fadeOut >= 0) {
		return nil, fmt.Errorf("%w: fade needs a positive sample rate and non-negative durations", ErrInvalidEffect)
	}

	out := buf.Clone()
	frames := out.Frames()

	if n := int(fadeIn * sampleRate); n > 0 && n < frames {
		g := curve.ramp(n)
		for _, ch := range out.Data {
			floats.Mul(ch[:n], g)
		}
	}

	if n := int(fadeOut * sampleRate); n > 0 && n < frames {
		g := curve.ramp(n)
		floats.Reverse(g)
		for _, ch := range out.Data {
			floats.Mul(ch[frames-n:], g)
		}
	}
	return out, nil
}

// Reverb adds the multi-tap reverb to every channel.
func Reverb(buf *Buffer, sampleRate float64, p ReverbParams) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, effectError(err)
	}
	return buf.MapChannels(false, func(x []float64) ([]float64, error) {
		return delay.Reverb(x, sampleRate, p)
	})
}

// Chorus applies the LFO chorus to every channel.
func Chorus(buf *Buffer, sampleRate float64, p ChorusParams) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, effectError(err)
	}
	return buf.MapChannels(false, func(x []float64) ([]float64, error) {
		return delay.Chorus(x, sampleRate, p)
	})
}

// Distort waveshapes every channel.
func Distort(buf *Buffer, p DistortionParams) (*Buffer, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, effectError(err)
	}
	return buf.MapChannels(false, func(x []float64) ([]float64, error) {
		return delay.Distort(x, p)
	})
}
