// Command filter-response prints the steady-state gain of the band-shaping
// stages (vocal, bass, treble and warmth) at a set of test frequencies.
//
// Usage:
//
//	filter-response
//	filter-response --rate 16000 --intensity 0.5
//	filter-response --stage bass_boost --freq 40,80,160,320
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tphakala/go-audio-enhancer/internal/biquad"
	"github.com/tphakala/go-audio-enhancer/internal/pipeline"
)

var bandStages = []pipeline.StageID{
	pipeline.VocalEnhance,
	pipeline.BassBoost,
	pipeline.TrebleEnhance,
	pipeline.WarmthFilter,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
)

// CLI defines the command-line interface.
type CLI struct {
	Rate      float64   `short:"r" default:"44100" help:"Sample rate in Hz"`
	Intensity float64   `short:"i" default:"1" help:"Stage intensity, 0 to 1"`
	Stage     []string  `short:"s" help:"Stages to show (default: all band stages)"`
	Freq      []float64 `short:"f" default:"30,60,100,250,500,1000,2000,4000,8000,12000,16000" help:"Test frequencies in Hz"`
	Bands     bool      `short:"b" help:"List the fitted band plan of each stage"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("filter-response"),
		kong.Description("Show the frequency response of the band-shaping stages"),
		kong.UsageOnError(),
	)

	out, err := render(cli)
	ctx.FatalIfErrorf(err)
	_, _ = os.Stdout.WriteString(out)
}

// selectStages resolves stage names, defaulting to every band stage.
func selectStages(names []string) ([]pipeline.StageID, error) {
	if len(names) == 0 {
		return bandStages, nil
	}
	ids := make([]pipeline.StageID, 0, len(names))
	for _, name := range names {
		id, ok := pipeline.ParseStageID(name)
		if !ok || pipeline.BandPlan(id) == nil {
			return nil, fmt.Errorf("%q is not a band-shaping stage", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func render(cli *CLI) (string, error) {
	if !(cli.Rate > 0) {
		return "", fmt.Errorf("sample rate must be positive, got %v", cli.Rate)
	}
	if !(cli.Intensity >= 0 && cli.Intensity <= 1) {
		return "", fmt.Errorf("intensity must be in [0, 1], got %v", cli.Intensity)
	}
	ids, err := selectStages(cli.Stage)
	if err != nil {
		return "", err
	}

	stages := make([]*pipeline.BandStage, len(ids))
	for i, id := range ids {
		stages[i], err = pipeline.NewBandStage(id, pipeline.BandPlan(id), cli.Rate, false)
		if err != nil {
			return "", err
		}
	}

	headers := []string{"Hz"}
	for _, id := range ids {
		headers = append(headers, id.String()+" dB")
	}

	var rows [][]string
	for _, f := range cli.Freq {
		if !biquad.FitFrequency(f, cli.Rate) {
			continue
		}
		row := []string{strconv.FormatFloat(f, 'f', -1, 64)}
		for _, s := range stages {
			db, err := s.ResponseDB(f, cli.Intensity)
			if err != nil {
				return "", err
			}
			row = append(row, fmt.Sprintf("%+.2f", db))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	out := titleStyle.Render(fmt.Sprintf("Band stage response at %g Hz, intensity %g", cli.Rate, cli.Intensity)) + "\n"
	out += t.String() + "\n"

	if cli.Bands {
		for i, s := range stages {
			out += "\n" + titleStyle.Render(ids[i].String()) + "\n"
			for _, b := range s.Bands() {
				out += fmt.Sprintf("  %7.1f - %7.1f Hz  center %7.1f  sections %d  weight %.2f\n",
					b.Low, b.High, b.Center(), b.Sections(), b.Weight)
			}
		}
	}
	return out, nil
}
