package spectral

import (
	"math"

	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"
)

// stft runs a Hann-windowed short-time Fourier transform with centered
// frames and resynthesizes by weighted overlap-add.
//
// Frames start at f·hop in a signal padded with size/2 zeros on each side.
// Synthesis windows each frame again and divides by the summed squared
// window, so a unity mask reconstructs the input.
type stft struct {
	fft    *fourier.FFT
	size   int
	hop    int
	bins   int
	window []float64
	scale  float64 // 1/size, gonum's inverse is unnormalized

	frame   []float64
	spec    []complex128
	product []complex128
	gain    []complex128
	seq     []float64
}

func newSTFT(size, hop int) *stft {
	bins := size/fftHermitianDivisor + 1
	window := make([]float64, size)
	for i := range window {
		// Periodic Hann.
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}
	return &stft{
		fft:     fourier.NewFFT(size),
		size:    size,
		hop:     hop,
		bins:    bins,
		window:  window,
		scale:   1 / float64(size),
		frame:   make([]float64, size),
		spec:    make([]complex128, bins),
		product: make([]complex128, bins),
		gain:    make([]complex128, bins),
		seq:     make([]float64, size),
	}
}

// frameCount returns the number of frames covering n samples.
func (s *stft) frameCount(n int) int {
	return (n+s.hop-1)/s.hop + 1
}

// pad returns x centered in a zero buffer that every frame fits into.
func (s *stft) pad(x []float64) []float64 {
	padded := make([]float64, (s.frameCount(len(x))-1)*s.hop+s.size)
	copy(padded[s.size/fftHermitianDivisor:], x)
	return padded
}

// analyze fills s.spec with the windowed spectrum of the frame at start.
func (s *stft) analyze(padded []float64, start int) {
	for i, w := range s.window {
		s.frame[i] = padded[start+i] * w
	}
	s.spec = s.fft.Coefficients(s.spec, s.frame)
}

// magnitudes returns |X[f][k]| for every frame f.
func (s *stft) magnitudes(x []float64) [][]float64 {
	padded := s.pad(x)
	frames := s.frameCount(len(x))
	mags := make([][]float64, frames)
	for f := range mags {
		s.analyze(padded, f*s.hop)
		row := make([]float64, s.bins)
		for k, c := range s.spec {
			row[k] = math.Hypot(real(c), imag(c))
		}
		mags[f] = row
	}
	return mags
}

// apply multiplies every frame's spectrum by masks[f] and resynthesizes.
func (s *stft) apply(x []float64, masks [][]float64) []float64 {
	padded := s.pad(x)
	out := make([]float64, len(padded))
	norm := make([]float64, len(padded))

	for f, mask := range masks {
		start := f * s.hop
		s.analyze(padded, start)

		for k, g := range mask {
			s.gain[k] = complex(g, 0)
		}
		c128.Mul(s.product, s.spec, s.gain)

		s.seq = s.fft.Sequence(s.seq, s.product)
		for i, v := range s.seq {
			w := s.window[i]
			out[start+i] += v * s.scale * w
			norm[start+i] += w * w
		}
	}

	offset := s.size / fftHermitianDivisor
	result := make([]float64, len(x))
	for i := range result {
		if n := norm[offset+i]; n > windowFloor {
			result[i] = out[offset+i] / n
		}
	}
	return result
}
