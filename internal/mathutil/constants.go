package mathutil

// Decibel conversion constants
const (
	// dbAmplitudeFactor converts amplitude ratios: dB = 20·log10(ratio).
	dbAmplitudeFactor = 20.0

	// levelFloor keeps log10 away from zero when measuring silence.
	levelFloor = 1e-10
)

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)
