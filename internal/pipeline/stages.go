package pipeline

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/dynamics"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
	"github.com/tphakala/go-audio-enhancer/internal/stereo"
)

// BandStage adds weighted band-passed copies of the signal to itself:
// out = x + Σ band(x)·intensity·weight.
type BandStage struct {
	id         StageID
	bands      []biquad.Band
	sampleRate float64
	parallel   bool
}

// NewBandStage builds a band-shaping stage. Bands that do not fit the
// sample rate are dropped.
func NewBandStage(id StageID, bands []biquad.Band, sampleRate float64, parallel bool) (*BandStage, error) {
	fitted := make([]biquad.Band, 0, len(bands))
	for _, b := range bands {
		fb, ok := biquad.FitBand(b, sampleRate)
		if !ok {
			continue
		}
		if _, err := fb.Design(sampleRate); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		fitted = append(fitted, fb)
	}
	return &BandStage{id: id, bands: fitted, sampleRate: sampleRate, parallel: parallel}, nil
}

// ID implements Stage.
func (s *BandStage) ID() StageID { return s.id }

// Bands returns the fitted band plan.
func (s *BandStage) Bands() []biquad.Band { return s.bands }

// ResponseDB returns the steady-state gain of the stage at freq Hz when run
// at intensity: 20·log10|1 + Σ intensity·weight·H_band(f)|.
func (s *BandStage) ResponseDB(freq, intensity float64) (float64, error) {
	h := complex(1, 0)
	for _, b := range s.bands {
		c, err := b.Design(s.sampleRate)
		if err != nil {
			return 0, err
		}
		h += complex(intensity*b.Weight, 0) * c.Response(freq, s.sampleRate)
	}
	return 20 * math.Log10(cmplx.Abs(h)), nil
}

// Process implements Stage.
func (s *BandStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	return buf.MapChannels(s.parallel, func(x []float64) ([]float64, error) {
		out := append([]float64(nil), x...)
		for _, b := range s.bands {
			filtered, err := b.Apply(x, s.sampleRate)
			if err != nil {
				return nil, err
			}
			simdops.AddScaled(out, intensity*b.Weight, filtered)
		}
		return out, nil
	})
}

// NoiseStage runs a NoiseReducer on every channel.
type NoiseStage struct {
	reducer    NoiseReducer
	sampleRate float64
	parallel   bool
}

// NewNoiseStage wraps reducer as the noise reduction stage.
func NewNoiseStage(reducer NoiseReducer, sampleRate float64, parallel bool) *NoiseStage {
	return &NoiseStage{reducer: reducer, sampleRate: sampleRate, parallel: parallel}
}

// ID implements Stage.
func (s *NoiseStage) ID() StageID { return NoiseReduction }

// Process implements Stage.
func (s *NoiseStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	return buf.MapChannels(s.parallel, func(x []float64) ([]float64, error) {
		return s.reducer.Reduce(x, s.sampleRate, intensity)
	})
}

// StereoStage widens stereo buffers. Mono buffers pass through.
type StereoStage struct {
	widener    *stereo.Widener
	sampleRate float64
}

// NewStereoStage builds the stereo widening stage.
func NewStereoStage(sampleRate float64) *StereoStage {
	return &StereoStage{widener: stereo.NewWidener(), sampleRate: sampleRate}
}

// ID implements Stage.
func (s *StereoStage) ID() StageID { return StereoEnhance }

// Process implements Stage.
func (s *StereoStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	if !buf.IsStereo() {
		return buf, nil
	}
	l, r, err := s.widener.Widen(buf.Data[0], buf.Data[1], intensity, s.sampleRate)
	if err != nil {
		return nil, err
	}
	return audio.FromChannels([][]float64{l, r})
}

// CompressionStage runs the multiband compressor on every channel.
type CompressionStage struct {
	multiband  *dynamics.Multiband
	sampleRate float64
	parallel   bool
}

// NewCompressionStage builds the compression stage over the default bands.
func NewCompressionStage(sampleRate float64, parallel bool) *CompressionStage {
	return &CompressionStage{multiband: dynamics.NewMultiband(), sampleRate: sampleRate, parallel: parallel}
}

// ID implements Stage.
func (s *CompressionStage) ID() StageID { return Compression }

// Process implements Stage.
func (s *CompressionStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	return buf.MapChannels(s.parallel, func(x []float64) ([]float64, error) {
		return s.multiband.Process(x, s.sampleRate, intensity)
	})
}

// MasteringStage saturates, trims the spectrum edges and adds presence:
// tanh(x·(0.85+0.15i))·1.05, high-pass 20 Hz, low-pass 18 kHz, then
// + band(2-5 kHz)·i·0.1.
type MasteringStage struct {
	highPass   biquad.Coefficients
	lowPass    *biquad.Coefficients // nil when 18 kHz is above the usable range
	presence   biquad.Band
	sampleRate float64
	parallel   bool
}

// NewMasteringStage designs the mastering filters for sampleRate.
func NewMasteringStage(sampleRate float64, parallel bool) (*MasteringStage, error) {
	hp, err := biquad.Design(biquad.Spec{Type: biquad.HighPass, Frequency: masteringHighPassHz, Q: biquad.ButterworthQ}, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("mastering high-pass: %w", err)
	}

	s := &MasteringStage{highPass: hp, sampleRate: sampleRate, parallel: parallel}

	if biquad.FitFrequency(masteringLowPassHz, sampleRate) {
		lp, err := biquad.Design(biquad.Spec{Type: biquad.LowPass, Frequency: masteringLowPassHz, Q: biquad.ButterworthQ}, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("mastering low-pass: %w", err)
		}
		s.lowPass = &lp
	}

	presence, ok := biquad.FitBand(biquad.Band{Low: presenceLow, High: presenceHigh, Order: presenceOrder, Weight: presenceWeight}, sampleRate)
	if ok {
		s.presence = presence
	}
	return s, nil
}

// ID implements Stage.
func (s *MasteringStage) ID() StageID { return Mastering }

// Process implements Stage.
func (s *MasteringStage) Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error) {
	drive := saturationBase + saturationSpan*intensity

	return buf.MapChannels(s.parallel, func(x []float64) ([]float64, error) {
		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = math.Tanh(v*drive) * saturationMakeup
		}

		biquad.NewCascade(s.highPass, masteringSections).ProcessBlock(out)
		if s.lowPass != nil {
			biquad.NewCascade(*s.lowPass, masteringSections).ProcessBlock(out)
		}

		if s.presence.High > 0 {
			presence, err := s.presence.Apply(out, s.sampleRate)
			if err != nil {
				return nil, err
			}
			simdops.AddScaled(out, intensity*s.presence.Weight, presence)
		}
		return out, nil
	})
}
