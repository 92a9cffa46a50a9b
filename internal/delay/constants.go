package delay

// Reverb constants.
const (
	// earlyReflectionDelay is the early reflection tap in seconds.
	earlyReflectionDelay = 0.01

	// earlyReflectionGain is the fixed gain of the early reflection tap.
	earlyReflectionGain = 0.3

	// basicTapSpacing is the spacing of the basic tap set in seconds.
	basicTapSpacing = 0.05

	// basicTapDecay is the per-tap decay of the basic tap set.
	basicTapDecay = 0.6

	// basicTapCount is the number of taps in the basic set.
	basicTapCount = 3
)

// Chorus constants.
const (
	// DefaultBaseDelay is the chorus center delay in seconds.
	DefaultBaseDelay = 0.02

	// voiceRateSpread detunes voice v to rate·(1+spread·v).
	voiceRateSpread = 0.1
)

// Defaults used by the standalone effect helpers.
const (
	DefaultRoomSize   = 0.5
	DefaultDamping    = 0.5
	DefaultWetLevel   = 0.3
	DefaultChorusRate = 1.5
	DefaultDepth      = 0.002
	DefaultChorusMix  = 0.5
	DefaultVoices     = 3
	DefaultDrive      = 2.0
	DefaultDriveMix   = 0.3
)
