// Package spectral provides FFT-based analysis, frequency-domain vocal
// isolation, level statistics and the STFT spectral-gate noise reducer.
package spectral

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// ErrInvalidInput is returned for unusable sample rates or channel pairs.
var ErrInvalidInput = errors.New("invalid spectral input")

// Result summarizes one magnitude spectrum.
type Result struct {
	PeakFrequency    float64
	SpectralCentroid float64
	BassEnergy       float64 // mean magnitude, 20-200 Hz
	MidEnergy        float64 // mean magnitude, 200-2000 Hz
	TrebleEnergy     float64 // mean magnitude, 2000-20000 Hz
	TotalEnergy      float64 // sum of magnitudes
}

// Analyze runs one forward FFT over samples and summarizes the positive
// bins k < n/2. Empty bands and silent input report 0.
func Analyze(samples []float64, sampleRate float64) (Result, error) {
	if !(sampleRate > 0) {
		return Result{}, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidInput, sampleRate)
	}
	n := len(samples)
	if n < fftHermitianDivisor {
		return Result{}, nil
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, samples)
	half := n / fftHermitianDivisor
	binHz := sampleRate / float64(n)

	mags := make([]float64, half)
	freqs := make([]float64, half)
	for k := range half {
		mags[k] = cmplx.Abs(coeffs[k])
		freqs[k] = float64(k) * binHz
	}

	var r Result
	var bass, mid, treble bandMean
	peakIdx := 0
	var weighted float64

	for k, m := range mags {
		f := freqs[k]
		if m > mags[peakIdx] {
			peakIdx = k
		}
		weighted += f * m

		switch {
		case f >= bassLow && f <= bassHigh:
			bass.add(m)
		case f > bassHigh && f <= midHigh:
			mid.add(m)
		case f > midHigh && f <= trebleHigh:
			treble.add(m)
		}
	}

	r.TotalEnergy = simdops.Sum(mags)
	r.PeakFrequency = freqs[peakIdx]
	if r.TotalEnergy > 0 {
		r.SpectralCentroid = weighted / r.TotalEnergy
	}
	r.BassEnergy = bass.mean()
	r.MidEnergy = mid.mean()
	r.TrebleEnergy = treble.mean()
	return r, nil
}

type bandMean struct {
	sum float64
	n   int
}

func (b *bandMean) add(v float64) {
	b.sum += v
	b.n++
}

func (b *bandMean) mean() float64 {
	if b.n == 0 {
		return 0
	}
	return b.sum / float64(b.n)
}

// IsolateCenter transforms the center mix (L+R)/2, halves every bin above
// 4 kHz and transforms back.
func IsolateCenter(left, right []float64, sampleRate float64) ([]float64, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: channel lengths %d and %d", ErrInvalidInput, len(left), len(right))
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidInput, sampleRate)
	}
	n := len(left)
	if n == 0 {
		return []float64{}, nil
	}

	center := make([]float64, n)
	for i := range center {
		center[i] = (left[i] + right[i]) / 2
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, center)
	binHz := sampleRate / float64(n)
	for k := range coeffs {
		if float64(k)*binHz > isolationCutoff {
			coeffs[k] *= isolationGain
		}
	}

	out := fft.Sequence(nil, coeffs)
	simdops.Scale(out, out, 1/float64(n))
	return out, nil
}
