// Command enhance-wav runs WAV files through the audio enhancer.
//
// Usage:
//
//	enhance-wav --preset music input.wav                     # writes input_enhanced.wav
//	enhance-wav --preset vocal -o out.wav input.wav
//	enhance-wav -c settings.toml --set bass_boost=0.8 in.wav
//	enhance-wav --preset bass -o outdir/ --workers 4 *.wav   # batch mode
//
// The settings file uses the stage names as keys:
//
//	noise_reduction = 0.3
//	bass_boost = 0.6
//	mastering = 0.5
//
// Mono and stereo 16, 24 and 32-bit PCM files are supported. Output keeps
// the input sample rate, channel count and bit depth.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	enhancer "github.com/tphakala/go-audio-enhancer"
	"github.com/tphakala/go-audio-enhancer/internal/wavio"
)

// Suffix for outputs written next to their input
const enhancedSuffix = "_enhanced"

// CLI defines the command-line interface.
type CLI struct {
	Preset     string             `short:"p" help:"Built-in preset: music, vocal, bass, treble"`
	Config     string             `short:"c" type:"existingfile" help:"TOML settings file, applied over the preset"`
	Set        map[string]float64 `help:"Override stage intensities, e.g. --set bass_boost=0.5;mastering=0.3"`
	Output     string             `short:"o" help:"Output file, or directory for several inputs"`
	Parallel   bool               `default:"true" negatable:"" help:"Process stereo channels concurrently"`
	Workers    int                `short:"w" default:"0" help:"Files processed at once (0 = number of CPUs)"`
	Verbose    bool               `short:"v" help:"Log stage diagnostics"`
	CPUProfile string             `name:"cpuprofile" type:"path" help:"Write CPU profile to file"`
	Files      []string           `arg:"" name:"files" type:"existingfile" help:"WAV files to enhance"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("enhance-wav"),
		kong.Description("Enhance WAV audio with noise reduction, tonal shaping, compression and mastering"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run(cli, newLogger(cli.Verbose)))
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// resolveSettings combines the preset, the settings file and the --set
// overrides, in that order.
func resolveSettings(cli *CLI, log logrus.FieldLogger) (enhancer.Settings, error) {
	var settings enhancer.Settings
	if cli.Preset != "" {
		s, err := enhancer.GetPreset(cli.Preset)
		if err != nil {
			return settings, err
		}
		settings = s
	}

	if cli.Config != "" {
		s, unknown, err := loadSettings(cli.Config, settings)
		if err != nil {
			return settings, err
		}
		for _, key := range unknown {
			log.WithField("key", key).Warn("ignoring unknown settings key")
		}
		settings = s
	}

	settings, unknown := applyOverrides(settings, cli.Set)
	for _, key := range unknown {
		log.WithField("key", key).Warn("ignoring unknown stage override")
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("%w: %w", enhancer.ErrInvalidSettings, err)
	}
	return settings, nil
}

func run(cli *CLI, log *logrus.Logger) error {
	if cli.CPUProfile != "" {
		f, err := os.Create(cli.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	settings, err := resolveSettings(cli, log)
	if err != nil {
		return err
	}
	fields := logrus.Fields{}
	for key, v := range settings.Map() {
		fields[key] = v
	}
	log.WithFields(fields).Debug("settings")
	log.WithField("simd", enhancer.SIMDInfo()).Debug("cpu")

	batch := len(cli.Files) > 1
	if batch && cli.Output != "" {
		if err := os.MkdirAll(cli.Output, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	workers := cli.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Files are independent: a failure is logged and the rest still run.
	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)
	for _, input := range cli.Files {
		g.Go(func() error {
			out := outputPath(input, cli.Output, batch)
			if err := enhanceFile(input, out, settings, cli.Parallel, log); err != nil {
				failed.Add(1)
				log.WithField("file", filepath.Base(input)).WithError(err).Error("enhancement failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(cli.Files))
	}
	log.WithField("files", len(cli.Files)).Debug("all files enhanced")
	return nil
}

// enhanceFile reads input, enhances it and writes output.
func enhanceFile(input, output string, settings enhancer.Settings, parallel bool, log *logrus.Logger) error {
	entry := log.WithField("file", filepath.Base(input))
	start := time.Now()

	in, err := wavio.Read(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	e, err := enhancer.New(&enhancer.Config{
		SampleRate:     float64(in.SampleRate),
		Settings:       settings,
		EnableParallel: parallel,
		Logger:         entry,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	before := enhancer.MeasureLevels(in.Buffer)
	out, err := e.Process(in.Buffer)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	after := enhancer.MeasureLevels(out)

	if err := wavio.Write(output, out, in.SampleRate, in.BitDepth); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}

	elapsed := time.Since(start)
	seconds := float64(out.Frames()) / float64(in.SampleRate)
	entry.WithFields(logrus.Fields{
		"output":      output,
		"sample_rate": in.SampleRate,
		"channels":    out.Channels(),
		"bit_depth":   in.BitDepth,
		"peak_db":     fmt.Sprintf("%.1f -> %.1f", before.PeakDB, after.PeakDB),
		"rms_db":      fmt.Sprintf("%.1f -> %.1f", before.RMSDB, after.RMSDB),
		"speed":       fmt.Sprintf("%.1fx realtime", seconds/elapsed.Seconds()),
	}).Info("enhanced")
	return nil
}
