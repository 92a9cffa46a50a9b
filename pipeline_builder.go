package enhancer

import (
	"fmt"

	"github.com/tphakala/go-audio-enhancer/internal/pipeline"
	"github.com/tphakala/go-audio-enhancer/internal/spectral"
)

// buildChain constructs the stage for every chain position. Stages are
// built regardless of intensity so Settings can be swapped per call.
func buildChain(config *Config) (*pipeline.Chain, error) {
	sr := config.SampleRate
	parallel := config.EnableParallel

	reducer := config.NoiseReducer
	if reducer == nil {
		reducer = spectral.NewSpectralGate()
	}

	stages := []pipeline.Stage{
		pipeline.NewNoiseStage(reducer, sr, parallel),
	}

	for _, id := range []StageID{VocalEnhance, BassBoost, TrebleEnhance, WarmthFilter} {
		stage, err := pipeline.NewBandStage(id, pipeline.BandPlan(id), sr, parallel)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s stage: %w", id, err)
		}
		stages = append(stages, stage)
	}

	stages = append(stages,
		pipeline.NewStereoStage(sr),
		pipeline.NewCompressionStage(sr, parallel),
	)

	mastering, err := pipeline.NewMasteringStage(sr, parallel)
	if err != nil {
		return nil, fmt.Errorf("failed to build mastering stage: %w", err)
	}
	stages = append(stages, mastering)

	return pipeline.NewChain(config.logger(), stages...), nil
}
