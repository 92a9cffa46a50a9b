package spectral

import (
	"math"

	"github.com/tphakala/go-audio-enhancer/internal/mathutil"
	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// Levels are whole-signal level statistics in dBFS.
type Levels struct {
	PeakDB         float64
	RMSDB          float64
	DynamicRangeDB float64 // peak to RMS ratio
}

// MeasureLevels reports peak, RMS and crest factor over all channels.
// Silence reports the level floor and a zero dynamic range.
func MeasureLevels(channels ...[]float64) Levels {
	var peak, energy float64
	var n int
	for _, ch := range channels {
		peak = math.Max(peak, simdops.MaxAbs(ch))
		energy += simdops.Energy(ch)
		n += len(ch)
	}

	var rms float64
	if n > 0 {
		rms = math.Sqrt(energy / float64(n))
	}

	l := Levels{
		PeakDB: mathutil.LinearToDB(peak),
		RMSDB:  mathutil.LinearToDB(rms),
	}
	if peak > 0 {
		l.DynamicRangeDB = mathutil.LinearToDB(peak / (rms + 1e-10))
	}
	return l
}
