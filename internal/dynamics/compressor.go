// Package dynamics implements the static compressor used by the compression
// stage, alone and per band.
package dynamics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned for compressor settings outside their range.
var ErrInvalidParams = errors.New("invalid dynamics parameters")

// Nominal time constants. The compressor is memoryless; these are reported
// for display only and do not shape the gain.
const (
	AttackSeconds  = 0.003
	ReleaseSeconds = 0.1
)

// ratioSpan maps intensity [0,1] to ratio [1,5].
const ratioSpan = 4.0

// Compressor is a static, sample-wise compressor.
type Compressor struct {
	threshold float64
	ratio     float64
}

// NewCompressor builds a compressor with threshold in (0, 1) and intensity
// in [0, 1]; the ratio is 1+4·intensity.
func NewCompressor(threshold, intensity float64) (*Compressor, error) {
	if !(threshold > 0 && threshold < 1) {
		return nil, fmt.Errorf("%w: threshold must be in (0, 1), got %v", ErrInvalidParams, threshold)
	}
	if !(intensity >= 0 && intensity <= 1) {
		return nil, fmt.Errorf("%w: intensity must be in [0, 1], got %v", ErrInvalidParams, intensity)
	}
	return &Compressor{threshold: threshold, ratio: 1 + ratioSpan*intensity}, nil
}

// Threshold returns the linear threshold.
func (c *Compressor) Threshold() float64 { return c.threshold }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	a := math.Abs(x)
	if a <= c.threshold {
		return x
	}
	return math.Copysign(c.threshold+(a-c.threshold)/c.ratio, x)
}

// Process returns a compressed copy of samples.
func (c *Compressor) Process(samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i, x := range samples {
		out[i] = c.ProcessSample(x)
	}
	return out
}
