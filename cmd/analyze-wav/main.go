// Command analyze-wav prints a spectral and level report for WAV files.
//
// Usage:
//
//	analyze-wav song.wav
//	analyze-wav --channel 1 take1.wav take2.wav
//
// The spectrum is a single FFT over the chosen channel. Levels cover all
// channels.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	enhancer "github.com/tphakala/go-audio-enhancer"
	"github.com/tphakala/go-audio-enhancer/internal/wavio"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E7D32")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000"))
)

// CLI defines the command-line interface.
type CLI struct {
	Channel int      `short:"c" default:"0" help:"Channel used for the spectrum (0 = left or mono)"`
	Files   []string `arg:"" name:"files" type:"existingfile" help:"WAV files to analyze"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("analyze-wav"),
		kong.Description("Report the spectral balance and levels of WAV files"),
		kong.UsageOnError(),
	)

	failed := false
	for _, path := range cli.Files {
		if err := analyzeFile(os.Stdout, path, cli.Channel); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// report is everything printed for one file.
type report struct {
	name       string
	sampleRate int
	bitDepth   int
	channels   int
	seconds    float64
	spectrum   enhancer.AnalysisResult
	levels     enhancer.Levels
}

// analyzeFile decodes path and writes its report to w.
func analyzeFile(w io.Writer, path string, channel int) error {
	in, err := wavio.Read(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if channel < 0 || channel >= in.Buffer.Channels() {
		return fmt.Errorf("%s: channel %d out of range, file has %d", path, channel, in.Buffer.Channels())
	}

	e, err := enhancer.New(&enhancer.Config{SampleRate: float64(in.SampleRate)})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	selected, err := enhancer.NewBufferFromChannels([][]float64{in.Buffer.Data[channel]})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	spectrum, err := e.Analyze(selected)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	r := report{
		name:       filepath.Base(path),
		sampleRate: in.SampleRate,
		bitDepth:   in.BitDepth,
		channels:   in.Buffer.Channels(),
		seconds:    float64(in.Buffer.Frames()) / float64(in.SampleRate),
		spectrum:   spectrum,
		levels:     enhancer.MeasureLevels(in.Buffer),
	}
	_, err = io.WriteString(w, r.render())
	return err
}

func row(key, value string) string {
	return keyStyle.Render(key) + valueStyle.Render(value) + "\n"
}

func (r report) render() string {
	s := titleStyle.Render(r.name) + "\n"

	s += sectionStyle.Render("Format") + "\n"
	s += row("Sample rate", fmt.Sprintf("%d Hz", r.sampleRate))
	s += row("Bit depth", fmt.Sprintf("%d-bit", r.bitDepth))
	s += row("Channels", fmt.Sprintf("%d", r.channels))
	s += row("Duration", fmt.Sprintf("%.2f s", r.seconds))

	s += sectionStyle.Render("Spectrum") + "\n"
	s += row("Peak frequency", fmt.Sprintf("%.1f Hz", r.spectrum.PeakFrequency))
	s += row("Centroid", fmt.Sprintf("%.1f Hz", r.spectrum.SpectralCentroid))
	s += row("Bass energy", fmt.Sprintf("%.4g", r.spectrum.BassEnergy))
	s += row("Mid energy", fmt.Sprintf("%.4g", r.spectrum.MidEnergy))
	s += row("Treble energy", fmt.Sprintf("%.4g", r.spectrum.TrebleEnergy))
	s += row("Total energy", fmt.Sprintf("%.4g", r.spectrum.TotalEnergy))

	s += sectionStyle.Render("Levels") + "\n"
	s += row("Peak", fmt.Sprintf("%.1f dBFS", r.levels.PeakDB))
	s += row("RMS", fmt.Sprintf("%.1f dBFS", r.levels.RMSDB))
	s += row("Dynamic range", fmt.Sprintf("%.1f dB", r.levels.DynamicRangeDB))

	s += row("SIMD", enhancer.SIMDInfo())
	return s + "\n"
}
