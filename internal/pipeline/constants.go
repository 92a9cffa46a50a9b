package pipeline

// Output level.
const (
	// NormalizePeak is the final peak level, leaving 5% headroom.
	NormalizePeak = 0.95
)

// Mastering constants.
const (
	saturationBase   = 0.85
	saturationSpan   = 0.15
	saturationMakeup = 1.05

	masteringHighPassHz = 20.0
	masteringLowPassHz  = 18000.0

	presenceLow    = 2000.0
	presenceHigh   = 5000.0
	presenceOrder  = 2
	presenceWeight = 0.1
)

// Mastering filters are second order.
const masteringSections = 1
