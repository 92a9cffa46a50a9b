// Package mathutil provides small numeric helpers shared by the DSP packages.
package mathutil

import (
	"math"
)

// DBToLinear converts a gain in decibels to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// LinearToDB converts a linear amplitude to decibels.
// Zero maps to roughly -200 dB instead of -Inf.
func LinearToDB(v float64) float64 {
	return dbAmplitudeFactor * math.Log10(math.Abs(v)+levelFloor)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// InUnitInterval reports whether v is finite and within [0, 1].
func InUnitInterval(v float64) bool {
	return IsFinite(v) && v >= 0 && v <= 1
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / halfDivisor
}
