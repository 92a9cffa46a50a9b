package biquad

// Design constants.
const (
	// ButterworthQ is the Q of a maximally flat second-order section.
	ButterworthQ = 0.7071067811865476

	// bandEdgeLimit is the fraction of Nyquist above which band plans are clipped.
	bandEdgeLimit = 0.9

	// sectionsPerOrder converts a nominal filter order to a section count.
	sectionsPerOrder = 2

	// shelfGainDivisor gives A = 10^(gain/40) for shelves.
	shelfGainDivisor = 40.0

	// peakGainDivisor gives A = 10^(gain/20) for the peaking filter.
	peakGainDivisor = 20.0
)
