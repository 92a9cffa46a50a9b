package biquad

import (
	"fmt"
	"math"
)

// Band is one band of a tone-shaping plan: a band-pass between Low and High
// Hz whose output is mixed back at Weight. Order is the nominal filter
// order; it is realized as max(1, Order/2) cascaded sections.
type Band struct {
	Low    float64
	High   float64
	Order  int
	Weight float64
}

// Sections returns the number of cascaded sections for the band.
func (b Band) Sections() int {
	return max(1, b.Order/sectionsPerOrder)
}

// Center returns the geometric center frequency.
func (b Band) Center() float64 {
	return math.Sqrt(b.Low * b.High)
}

// BandPassSpec converts band edges to a band-pass spec with
// f0 = sqrt(low*high) and Q = f0/(high-low).
func BandPassSpec(low, high float64) (Spec, error) {
	if !(low > 0) || !(high > low) {
		return Spec{}, fmt.Errorf("%w: band edges %v..%v Hz", ErrInvalidSpec, low, high)
	}
	f0 := math.Sqrt(low * high)
	return Spec{Type: BandPass, Frequency: f0, Q: f0 / (high - low)}, nil
}

// DesignBandPass designs a band-pass section from band edges.
func DesignBandPass(low, high, sampleRate float64) (Coefficients, error) {
	spec, err := BandPassSpec(low, high)
	if err != nil {
		return Coefficients{}, err
	}
	return Design(spec, sampleRate)
}

// FitBand adapts a band plan written for 44.1 kHz to sampleRate. Bands
// whose lower edge is at or above 0.9·Nyquist are dropped (ok=false); the
// upper edge is pulled down to 0.9·Nyquist.
func FitBand(b Band, sampleRate float64) (Band, bool) {
	limit := bandEdgeLimit * sampleRate / 2
	if b.Low >= limit {
		return b, false
	}
	b.High = math.Min(b.High, limit)
	return b, true
}

// FitFrequency reports whether a cutoff fits below 0.9·Nyquist.
func FitFrequency(freq, sampleRate float64) bool {
	return freq > 0 && freq < bandEdgeLimit*sampleRate/2
}

// Design builds the band's cascade at sampleRate.
func (b Band) Design(sampleRate float64) (*Cascade, error) {
	c, err := DesignBandPass(b.Low, b.High, sampleRate)
	if err != nil {
		return nil, err
	}
	return NewCascade(c, b.Sections()), nil
}

// Apply returns the band-passed copy of samples.
func (b Band) Apply(samples []float64, sampleRate float64) ([]float64, error) {
	c, err := b.Design(sampleRate)
	if err != nil {
		return nil, err
	}
	return c.Apply(samples), nil
}
