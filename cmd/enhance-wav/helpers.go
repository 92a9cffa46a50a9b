package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	enhancer "github.com/tphakala/go-audio-enhancer"
)

// loadSettings overlays the keys present in a TOML file onto base. Unknown
// keys are returned so the caller can warn about them.
func loadSettings(path string, base enhancer.Settings) (enhancer.Settings, []string, error) {
	settings := base
	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return base, nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return settings, unknown, nil
}

// applyOverrides sets the stage intensities named in overrides. Unknown
// stage names are returned.
func applyOverrides(base enhancer.Settings, overrides map[string]float64) (enhancer.Settings, []string) {
	m := base.Map()
	var unknown []string
	for key, v := range overrides {
		if _, ok := m[key]; !ok {
			unknown = append(unknown, key)
			continue
		}
		m[key] = v
	}
	return enhancer.ParseSettings(m), unknown
}

// outputPath picks the destination for input. An explicit file is used
// as is for a single input; a directory receives files with the same
// base name. Without an output the result lands next to the input with
// an "_enhanced" suffix.
func outputPath(input, output string, batch bool) string {
	switch {
	case output == "":
		ext := filepath.Ext(input)
		return strings.TrimSuffix(input, ext) + enhancedSuffix + ext
	case batch || isDir(output):
		return filepath.Join(output, filepath.Base(input))
	default:
		return output
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
