package spectral

// Analysis bands in Hz. Bass includes its lower edge; mid and treble
// exclude theirs.
const (
	bassLow    = 20.0
	bassHigh   = 200.0
	midHigh    = 2000.0
	trebleHigh = 20000.0
)

// Center isolation constants.
const (
	isolationCutoff = 4000.0
	isolationGain   = 0.5
)

// STFT and spectral gate constants.
const (
	DefaultFrameSize = 2048
	DefaultHop       = 512

	// defaultStationaryShare and defaultNonStationaryShare scale the stage
	// intensity into the attenuation of each pass.
	defaultStationaryShare    = 0.6
	defaultNonStationaryShare = 0.4

	// defaultQuietFraction of frames, by energy, estimates the noise floor.
	defaultQuietFraction = 0.1

	// defaultThresholdStd places the gate this many standard deviations
	// above the noise floor mean.
	defaultThresholdStd = 1.5

	// defaultSmoothFrames is the running mean half-width of the
	// non-stationary pass.
	defaultSmoothFrames = 4

	// defaultSmoothRatio is how far above its running mean a bin must rise
	// to pass the non-stationary gate.
	defaultSmoothRatio = 1.5

	// fftHermitianDivisor: a real FFT of size N has N/2+1 unique bins.
	fftHermitianDivisor = 2

	// windowFloor guards the overlap-add normalization.
	windowFloor = 1e-12
)
