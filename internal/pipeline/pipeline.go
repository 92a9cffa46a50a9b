// Package pipeline runs the fixed chain of enhancement stages.
//
// Stages run in Order, each on its own copy of the buffer. A stage whose
// intensity is exactly zero is skipped. A stage that fails or panics is
// logged and its input forwarded, so one bad stage never aborts the chain.
// The chain ends with peak normalization to NormalizePeak.
package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
	"github.com/tphakala/go-audio-enhancer/internal/mathutil"
)

// StageID identifies a chain position.
type StageID int

const (
	NoiseReduction StageID = iota
	VocalEnhance
	BassBoost
	TrebleEnhance
	StereoEnhance
	WarmthFilter
	Compression
	Mastering
)

// Order is the fixed processing order. Normalization follows the last stage.
var Order = []StageID{
	NoiseReduction,
	VocalEnhance,
	BassBoost,
	TrebleEnhance,
	StereoEnhance,
	WarmthFilter,
	Compression,
	Mastering,
}

var stageNames = [...]string{
	"noise_reduction",
	"vocal_enhance",
	"bass_boost",
	"treble_enhance",
	"stereo_enhance",
	"warmth_filter",
	"compression",
	"mastering",
}

// String returns the snake_case settings key.
func (id StageID) String() string {
	if id >= 0 && int(id) < len(stageNames) {
		return stageNames[id]
	}
	return fmt.Sprintf("StageID(%d)", int(id))
}

// ParseStageID maps a settings key to its stage.
func ParseStageID(name string) (StageID, bool) {
	for i, n := range stageNames {
		if n == name {
			return StageID(i), true
		}
	}
	return 0, false
}

// Stage is one enhancement step. Process must not modify buf and must
// return a buffer with the same layout and frame count.
type Stage interface {
	ID() StageID
	Process(buf *audio.Buffer, intensity float64) (*audio.Buffer, error)
}

// NoiseReducer denoises one channel. The result has the same length.
type NoiseReducer interface {
	Reduce(samples []float64, sampleRate, intensity float64) ([]float64, error)
}

// Chain holds the stages for each chain position.
type Chain struct {
	stages map[StageID]Stage
	log    logrus.FieldLogger
}

// NewChain builds a chain. Later stages with the same ID replace earlier
// ones; positions without a stage are skipped.
func NewChain(log logrus.FieldLogger, stages ...Stage) *Chain {
	c := &Chain{
		stages: make(map[StageID]Stage, len(stages)),
		log:    log,
	}
	for _, s := range stages {
		c.stages[s.ID()] = s
	}
	return c
}

// Stages returns the configured stage IDs in processing order.
func (c *Chain) Stages() []StageID {
	ids := make([]StageID, 0, len(c.stages))
	for _, id := range Order {
		if _, ok := c.stages[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Run processes buf through every enabled stage and normalizes the result.
// Only a malformed buffer is an error. When every stage is disabled the
// returned buffer holds the input samples unchanged.
func (c *Chain) Run(buf *audio.Buffer, settings Settings) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	out := buf.Clone()
	if settings.AllDisabled() {
		c.log.Debug("all stages disabled")
		return out, nil
	}

	for _, id := range Order {
		intensity := settings.Get(id)
		entry := c.log.WithFields(logrus.Fields{
			"stage":     id.String(),
			"intensity": intensity,
		})

		if intensity == 0 {
			entry.Debug("stage skipped")
			continue
		}
		stage, ok := c.stages[id]
		if !ok {
			entry.Debug("stage not configured")
			continue
		}

		entry.WithFields(logrus.Fields{
			"frames":   out.Frames(),
			"channels": out.Channels(),
		}).Debug("running stage")

		res, err := runStage(stage, out, intensity)
		if err != nil {
			entry.WithField("error", err.Error()).Warn("stage failed, forwarding its input")
			continue
		}
		out = res
	}

	Normalize(out)
	return out, nil
}

// runStage calls the stage on a copy of buf and turns panics and shape
// changes into errors.
func runStage(stage Stage, buf *audio.Buffer, intensity float64) (res *audio.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	res, err = stage.Process(buf.Clone(), intensity)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("stage %s returned no buffer", stage.ID())
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if res.Layout != buf.Layout || res.Frames() != buf.Frames() {
		return nil, fmt.Errorf("%w: stage %s changed shape from %v/%d to %v/%d",
			audio.ErrInvalidShape, stage.ID(), buf.Layout, buf.Frames(), res.Layout, res.Frames())
	}
	if !mathutil.IsFinite(res.Peak()) {
		return nil, fmt.Errorf("stage %s produced non-finite samples", stage.ID())
	}
	return res, nil
}

// Normalize scales buf in place so its peak is NormalizePeak. Silence is
// left alone.
func Normalize(buf *audio.Buffer) {
	peak := buf.Peak()
	if peak == 0 {
		return
	}
	buf.Scale(NormalizePeak / peak)
}
