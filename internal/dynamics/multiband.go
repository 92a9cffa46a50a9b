package dynamics

import (
	"fmt"

	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// BandConfig is one band of the multiband compressor. The band's
// intensity is the stage intensity times IntensityScale.
type BandConfig struct {
	Low            float64
	High           float64
	Order          int
	IntensityScale float64
	Threshold      float64
}

// DefaultBands returns the low, mid and high bands.
func DefaultBands() []BandConfig {
	return []BandConfig{
		{Low: 20, High: 200, Order: 4, IntensityScale: 0.8, Threshold: 0.6},
		{Low: 200, High: 2000, Order: 4, IntensityScale: 1.0, Threshold: 0.5},
		{Low: 2000, High: 20000, Order: 4, IntensityScale: 0.7, Threshold: 0.7},
	}
}

// Multiband splits the signal with band-pass cascades, compresses each band
// and sums the results. The sum is not renormalized.
type Multiband struct {
	Bands []BandConfig
}

// NewMultiband returns a compressor over the default bands.
func NewMultiband() *Multiband {
	return &Multiband{Bands: DefaultBands()}
}

// Process compresses one channel at the given stage intensity.
func (m *Multiband) Process(samples []float64, sampleRate, intensity float64) ([]float64, error) {
	out := make([]float64, len(samples))

	for i, bc := range m.Bands {
		band, ok := biquad.FitBand(biquad.Band{Low: bc.Low, High: bc.High, Order: bc.Order}, sampleRate)
		if !ok {
			continue
		}
		comp, err := NewCompressor(bc.Threshold, intensity*bc.IntensityScale)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		filtered, err := band.Apply(samples, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", i, err)
		}
		simdops.Add(out, comp.Process(filtered))
	}

	return out, nil
}
