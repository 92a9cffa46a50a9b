// Package simdops provides the vector kernels used by the effect stages.
//
// Element-wise scaling, sums and dot products go through
// github.com/tphakala/simd, which picks AVX2/SSE/NEON at runtime.
// Accumulation into an existing buffer uses gonum's floats package.
package simdops

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Scale multiplies each element by s: dst[i] = a[i] * s.
// dst and a may alias.
func Scale(dst, a []float64, s float64) {
	if len(a) == 0 {
		return
	}
	f64.Scale(dst[:len(a)], a, s)
}

// Sum returns the sum of all elements.
func Sum(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return f64.Sum(a)
}

// Energy returns the sum of squares of a.
func Energy(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return f64.DotProduct(a, a)
}

// RMS returns the root mean square of a, or 0 for an empty slice.
func RMS(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return math.Sqrt(Energy(a) / float64(len(a)))
}

// MaxAbs returns the largest absolute value in a. A NaN anywhere in a
// yields NaN.
func MaxAbs(a []float64) float64 {
	var peak float64
	for _, v := range a {
		av := math.Abs(v)
		if math.IsNaN(av) {
			return av
		}
		if av > peak {
			peak = av
		}
	}
	return peak
}

// AddScaled accumulates alpha*s into dst: dst[i] += alpha * s[i].
func AddScaled(dst []float64, alpha float64, s []float64) {
	if len(s) == 0 {
		return
	}
	floats.AddScaled(dst, alpha, s)
}

// Add accumulates s into dst: dst[i] += s[i].
func Add(dst, s []float64) {
	if len(s) == 0 {
		return
	}
	floats.Add(dst, s)
}

// Mix writes dry*(1-wet) + processed*wet into dst.
// dst may alias dry or processed.
func Mix(dst, dry, processed []float64, wet float64) {
	dryGain := 1 - wet
	for i := range dry {
		dst[i] = dry[i]*dryGain + processed[i]*wet
	}
}

// Interleave2 interleaves two channels: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
func Interleave2(dst, a, b []float64) {
	if len(a) == 0 {
		return
	}
	f64.Interleave2(dst, a, b)
}

// Deinterleave2 splits interleaved stereo samples into a and b.
func Deinterleave2(a, b, src []float64) {
	if len(a) == 0 {
		return
	}
	f64.Deinterleave2(a, b, src)
}
