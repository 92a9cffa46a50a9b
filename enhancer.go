package enhancer

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/pipeline"
	"github.com/tphakala/go-audio-enhancer/internal/spectral"
)

// Enhancer runs the fixed enhancement chain over whole buffers.
// It holds no per-call state and is safe for concurrent use.
type Enhancer struct {
	config Config
	chain  *pipeline.Chain
	log    logrus.FieldLogger
}

// newEnhancer builds the stage chain for config.
func newEnhancer(config *Config) (*Enhancer, error) {
	chain, err := buildChain(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	e := &Enhancer{
		config: *config,
		chain:  chain,
		log:    config.logger(),
	}
	e.config.Logger = e.log
	return e, nil
}

// Process enhances buf with the configured settings. The input is not
// modified; the result has the same layout and frame count.
func (e *Enhancer) Process(buf *Buffer) (*Buffer, error) {
	return e.run(buf, e.config.Settings)
}

// ProcessWith enhances buf with settings instead of the configured ones.
func (e *Enhancer) ProcessWith(buf *Buffer, settings Settings) (*Buffer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return e.run(buf, settings)
}

func (e *Enhancer) run(buf *Buffer, settings Settings) (*Buffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: buffer is nil", ErrInvalidShape)
	}
	return e.chain.Run(buf, settings)
}

// ProcessChannels enhances planar channel data. One slice is mono, two
// are stereo.
func (e *Enhancer) ProcessChannels(channels [][]float64) ([][]float64, error) {
	buf, err := audio.FromChannels(channels)
	if err != nil {
		return nil, err
	}

	out, err := e.Process(buf)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ProcessInterleaved enhances interleaved samples ([L0, R0, L1, R1, ...]
// for stereo).
func (e *Enhancer) ProcessInterleaved(samples []float64, channels int) ([]float64, error) {
	buf, err := audio.FromInterleaved(samples, channels)
	if err != nil {
		return nil, err
	}

	out, err := e.Process(buf)
	if err != nil {
		return nil, err
	}
	return out.Interleaved(), nil
}

// Analyze returns the spectral summary of the first channel of buf.
func (e *Enhancer) Analyze(buf *Buffer) (AnalysisResult, error) {
	if buf == nil {
		return AnalysisResult{}, fmt.Errorf("%w: buffer is nil", ErrInvalidShape)
	}
	if err := buf.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	return spectral.Analyze(buf.Data[0], e.config.SampleRate)
}

// MeasureLevels reports peak, RMS and dynamic range over every channel
// of buf.
func MeasureLevels(buf *Buffer) Levels {
	if buf == nil {
		return spectral.MeasureLevels()
	}
	return spectral.MeasureLevels(buf.Data...)
}

// Settings returns the configured stage intensities.
func (e *Enhancer) Settings() Settings {
	return e.config.Settings
}

// SampleRate returns the configured sample rate.
func (e *Enhancer) SampleRate() float64 {
	return e.config.SampleRate
}

// Info describes an enhancer instance.
type Info struct {
	// SampleRate in Hz.
	SampleRate float64

	// Stages lists the enabled stages in processing order.
	Stages []string

	// Parallel reports whether stereo channels run concurrently.
	Parallel bool

	// SIMDType describes the SIMD instruction set used by vector kernels.
	SIMDType string
}

// GetInfo returns information about the enhancer.
func (e *Enhancer) GetInfo() Info {
	var enabled []string
	for _, id := range e.chain.Stages() {
		if e.config.Settings.Get(id) != 0 {
			enabled = append(enabled, id.String())
		}
	}
	return Info{
		SampleRate: e.config.SampleRate,
		Stages:     enabled,
		Parallel:   e.config.EnableParallel,
		SIMDType:   SIMDInfo(),
	}
}

// SIMDInfo returns the SIMD capabilities detected on this CPU.
func SIMDInfo() string {
	return cpu.Info()
}
