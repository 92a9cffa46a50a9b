package enhancer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/pipeline"
	"github.com/tphakala/go-audio-enhancer/internal/spectral"
)

// Buffer is a planar float64 audio buffer, one slice per channel.
type Buffer = audio.Buffer

// NewBuffer allocates a silent buffer.
func NewBuffer(frames int, layout ChannelLayout) (*Buffer, error) {
	return audio.New(frames, layout)
}

// NewBufferFromChannels wraps planar channel slices without copying.
func NewBufferFromChannels(channels [][]float64) (*Buffer, error) {
	return audio.FromChannels(channels)
}

// NewBufferFromInterleaved de-interleaves samples into a new buffer.
func NewBufferFromInterleaved(samples []float64, channels int) (*Buffer, error) {
	return audio.FromInterleaved(samples, channels)
}

// ChannelLayout tags a buffer as mono or stereo.
type ChannelLayout = audio.ChannelLayout

// Channel layouts.
const (
	Mono   = audio.Mono
	Stereo = audio.Stereo
)

// Settings holds one intensity in [0, 1] per stage. Zero disables a stage.
type Settings = pipeline.Settings

// StageID identifies one position in the enhancement chain.
type StageID = pipeline.StageID

// Stage identifiers in processing order.
const (
	NoiseReduction = pipeline.NoiseReduction
	VocalEnhance   = pipeline.VocalEnhance
	BassBoost      = pipeline.BassBoost
	TrebleEnhance  = pipeline.TrebleEnhance
	StereoEnhance  = pipeline.StereoEnhance
	WarmthFilter   = pipeline.WarmthFilter
	Compression    = pipeline.Compression
	Mastering      = pipeline.Mastering
)

// NoiseReducer denoises a single channel without changing its length.
// Config.NoiseReducer replaces the built-in spectral gate.
type NoiseReducer = pipeline.NoiseReducer

// AnalysisResult is the spectral summary returned by Enhancer.Analyze.
type AnalysisResult = spectral.Result

// Levels are peak, RMS and dynamic range in dB.
type Levels = spectral.Levels

// Config holds enhancer configuration.
type Config struct {
	// SampleRate of every buffer passed to the enhancer, in Hz.
	SampleRate float64

	// Settings selects the stage intensities.
	Settings Settings

	// EnableParallel processes the two channels of a stereo buffer on
	// separate goroutines. Output is identical to sequential processing.
	EnableParallel bool

	// NoiseReducer overrides the default STFT spectral gate.
	NoiseReducer NoiseReducer

	// Logger receives stage diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid enhancer configuration")

	// ErrInvalidSettings indicates an intensity outside [0, 1].
	ErrInvalidSettings = errors.New("invalid effect settings")

	// ErrInvalidShape indicates a buffer with an unsupported channel count
	// or ragged channels.
	ErrInvalidShape = audio.ErrInvalidShape

	// ErrInvalidEffect indicates invalid parameters for a standalone effect.
	ErrInvalidEffect = errors.New("invalid effect parameters")
)

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !(c.SampleRate >= minSampleRate && c.SampleRate <= maxSampleRate) {
		return fmt.Errorf("%w: sample rate must be %v-%v Hz, got %v",
			ErrInvalidConfig, minSampleRate, maxSampleRate, c.SampleRate)
	}
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// logger returns the configured logger or one that discards everything.
func (c *Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ParseSettings builds Settings from snake_case stage names such as
// "bass_boost". Unknown keys are ignored and missing keys stay 0.
func ParseSettings(m map[string]float64) Settings {
	return pipeline.ParseSettings(m)
}

// Preset names accepted by GetPreset.
const (
	PresetMusic  = "music"
	PresetVocal  = "vocal"
	PresetBass   = "bass"
	PresetTreble = "treble"
)

// Presets lists the built-in preset names.
func Presets() []string {
	return []string{PresetMusic, PresetVocal, PresetBass, PresetTreble}
}

// GetPreset returns the settings for a built-in preset. Names are case
// insensitive.
func GetPreset(name string) (Settings, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetMusic:
		return Settings{
			NoiseReduction: 0.3,
			VocalEnhance:   0.4,
			BassBoost:      0.5,
			TrebleEnhance:  0.4,
			StereoEnhance:  0.6,
			WarmthFilter:   0.4,
			Compression:    0.5,
			Mastering:      0.6,
		}, nil

	case PresetVocal:
		return Settings{
			NoiseReduction: 0.6,
			VocalEnhance:   0.8,
			BassBoost:      0.2,
			TrebleEnhance:  0.6,
			StereoEnhance:  0.2,
			WarmthFilter:   0.6,
			Compression:    0.7,
			Mastering:      0.5,
		}, nil

	case PresetBass:
		return Settings{
			NoiseReduction: 0.2,
			VocalEnhance:   0.2,
			BassBoost:      0.8,
			TrebleEnhance:  0.1,
			StereoEnhance:  0.6,
			WarmthFilter:   0.5,
			Compression:    0.6,
			Mastering:      0.7,
		}, nil

	case PresetTreble:
		return Settings{
			NoiseReduction: 0.4,
			VocalEnhance:   0.3,
			BassBoost:      0.1,
			TrebleEnhance:  0.8,
			StereoEnhance:  0.7,
			WarmthFilter:   0.3,
			Compression:    0.4,
			Mastering:      0.6,
		}, nil

	default:
		return Settings{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidSettings, name)
	}
}

// New creates an enhancer with the specified configuration. The config is
// copied; later changes to it have no effect.
func New(config *Config) (*Enhancer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newEnhancer(config)
}
