package enhancer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// Common sample rates for convenience functions.
const (
	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// NewWithPreset creates an enhancer for a built-in preset.
func NewWithPreset(sampleRate float64, preset string) (*Enhancer, error) {
	settings, err := GetPreset(preset)
	if err != nil {
		return nil, err
	}
	return New(&Config{
		SampleRate: sampleRate,
		Settings:   settings,
	})
}

// EnhanceMono is a convenience function for one-shot mono enhancement.
func EnhanceMono(samples []float64, sampleRate float64, settings Settings) ([]float64, error) {
	e, err := New(&Config{SampleRate: sampleRate, Settings: settings})
	if err != nil {
		return nil, err
	}

	out, err := e.ProcessChannels([][]float64{samples})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EnhanceStereo is a convenience function for one-shot stereo enhancement.
// Both channels must have the same length.
func EnhanceStereo(left, right []float64, sampleRate float64, settings Settings) (leftOut, rightOut []float64, err error) {
	e, err := New(&Config{SampleRate: sampleRate, Settings: settings, EnableParallel: true})
	if err != nil {
		return nil, nil, err
	}

	out, err := e.ProcessChannels([][]float64{left, right})
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	simdops.Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	simdops.Deinterleave2(left, right, interleaved[:numSamples*stereoChannels])
	return left, right
}

// ProcessBatch enhances every buffer in bufs with at most workers running
// at once (workers <= 0 uses GOMAXPROCS). Results keep the input order.
// The context is checked before each buffer starts; a buffer already in
// progress always runs to completion. The first error cancels the
// buffers not yet started.
func (e *Enhancer) ProcessBatch(ctx context.Context, bufs []*Buffer, workers int) ([]*Buffer, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]*Buffer, len(bufs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, buf := range bufs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Process(buf)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation can stop the loop before any goroutine sees it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
