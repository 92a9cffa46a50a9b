package spectral

import (
	"fmt"
	"math"
	"slices"
)

// SpectralGate is an STFT noise gate. Reduce runs two passes: a stationary
// pass against a noise floor estimated from the quietest frames, then a
// non-stationary pass against each bin's running mean over neighbouring
// frames. Bins below the gate are attenuated by the pass's share of the
// intensity.
type SpectralGate struct {
	FrameSize          int
	Hop                int
	StationaryShare    float64
	NonStationaryShare float64
	QuietFraction      float64
	ThresholdStd       float64
	SmoothFrames       int
	SmoothRatio        float64
}

// NewSpectralGate returns a gate with 2048-sample frames and a 512 hop.
func NewSpectralGate() *SpectralGate {
	return &SpectralGate{
		FrameSize:          DefaultFrameSize,
		Hop:                DefaultHop,
		StationaryShare:    defaultStationaryShare,
		NonStationaryShare: defaultNonStationaryShare,
		QuietFraction:      defaultQuietFraction,
		ThresholdStd:       defaultThresholdStd,
		SmoothFrames:       defaultSmoothFrames,
		SmoothRatio:        defaultSmoothRatio,
	}
}

func (g *SpectralGate) validate(sampleRate, intensity float64) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidInput, sampleRate)
	}
	if !(intensity >= 0 && intensity <= 1) {
		return fmt.Errorf("%w: intensity must be in [0, 1], got %v", ErrInvalidInput, intensity)
	}
	if g.FrameSize < 2 || g.Hop < 1 || g.Hop > g.FrameSize {
		return fmt.Errorf("%w: frame size %d, hop %d", ErrInvalidInput, g.FrameSize, g.Hop)
	}
	return nil
}

// Reduce returns a denoised copy of samples with the same length.
func (g *SpectralGate) Reduce(samples []float64, sampleRate, intensity float64) ([]float64, error) {
	if err := g.validate(sampleRate, intensity); err != nil {
		return nil, err
	}
	if len(samples) == 0 || intensity == 0 {
		return append([]float64{}, samples...), nil
	}

	s := newSTFT(g.FrameSize, g.Hop)

	mags := s.magnitudes(samples)
	first := s.apply(samples, g.stationaryMask(mags, intensity*g.StationaryShare))

	mags = s.magnitudes(first)
	return s.apply(first, g.nonStationaryMask(mags, intensity*g.NonStationaryShare)), nil
}

// stationaryMask gates each bin against mean+ThresholdStd·std of that bin
// over the quietest frames.
func (g *SpectralGate) stationaryMask(mags [][]float64, reduction float64) [][]float64 {
	frames := len(mags)
	bins := len(mags[0])

	order := make([]int, frames)
	energy := make([]float64, frames)
	for f, row := range mags {
		order[f] = f
		for _, m := range row {
			energy[f] += m * m
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case energy[a] < energy[b]:
			return -1
		case energy[a] > energy[b]:
			return 1
		default:
			return 0
		}
	})
	quiet := order[:max(1, int(math.Ceil(g.QuietFraction*float64(frames))))]

	threshold := make([]float64, bins)
	for k := range threshold {
		var sum, sumSq float64
		for _, f := range quiet {
			m := mags[f][k]
			sum += m
			sumSq += m * m
		}
		n := float64(len(quiet))
		mean := sum / n
		std := math.Sqrt(math.Max(0, sumSq/n-mean*mean))
		threshold[k] = mean + g.ThresholdStd*std
	}

	return gateMasks(mags, reduction, func(_, k int) float64 { return threshold[k] })
}

// nonStationaryMask gates each bin against SmoothRatio times its running
// mean over ±SmoothFrames frames.
func (g *SpectralGate) nonStationaryMask(mags [][]float64, reduction float64) [][]float64 {
	frames := len(mags)
	bins := len(mags[0])

	smoothed := make([][]float64, frames)
	for f := range smoothed {
		lo := max(0, f-g.SmoothFrames)
		hi := min(frames-1, f+g.SmoothFrames)
		row := make([]float64, bins)
		for j := lo; j <= hi; j++ {
			for k, m := range mags[j] {
				row[k] += m
			}
		}
		inv := 1 / float64(hi-lo+1)
		for k := range row {
			row[k] *= inv
		}
		smoothed[f] = row
	}

	return gateMasks(mags, reduction, func(f, k int) float64 { return g.SmoothRatio * smoothed[f][k] })
}

// gateMasks returns 1-reduction for bins at or below their threshold and 1
// elsewhere.
func gateMasks(mags [][]float64, reduction float64, threshold func(f, k int) float64) [][]float64 {
	masks := make([][]float64, len(mags))
	for f, row := range mags {
		mask := make([]float64, len(row))
		for k, m := range row {
			if m <= threshold(f, k) {
				mask[k] = 1 - reduction
			} else {
				mask[k] = 1
			}
		}
		masks[f] = mask
	}
	return masks
}
