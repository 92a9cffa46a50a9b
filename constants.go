package enhancer

// Sample rate limits
const (
	minSampleRate = 8000.0   // Lowest rate at which every band plan keeps a band
	maxSampleRate = 384000.0 // Highest supported rate
)

// Channel constants
const (
	stereoChannels = 2 // Stereo channel count (used by interleave functions)
)

// Effect parameters
const (
	// Exponential fades span exp(-5)..exp(0).
	fadeExpFloor = -5.0

	// RMS normalization clips to this absolute level.
	rmsClipLimit = 1.0
)
