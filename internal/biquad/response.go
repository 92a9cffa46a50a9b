package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) of c at freq Hz.
func (c Coefficients) Response(freq, sampleRate float64) complex128 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// MagnitudeAt returns |H| at freq Hz.
func MagnitudeAt(c Coefficients, freq, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freq, sampleRate))
}

// MagnitudeDB returns 20·log10|H| at freq Hz.
func MagnitudeDB(c Coefficients, freq, sampleRate float64) float64 {
	return 20 * math.Log10(MagnitudeAt(c, freq, sampleRate))
}

// Response returns the product of the section responses at freq Hz.
func (c *Cascade) Response(freq, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freq, sampleRate)
	}
	return h
}

// MagnitudeAt returns the cascade magnitude at freq Hz.
func (c *Cascade) MagnitudeAt(freq, sampleRate float64) float64 {
	m := 1.0
	for i := range c.sections {
		m *= MagnitudeAt(c.sections[i].Coefficients, freq, sampleRate)
	}
	return m
}

// MagnitudeDB returns the cascade magnitude in dB.
func (c *Cascade) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(c.MagnitudeAt(freq, sampleRate))
}
