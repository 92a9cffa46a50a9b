package enhancer

import (
	"context"
	"testing"

	"github.com/tphakala/go-audio-enhancer/internal/testutil"
)

// BenchmarkProcessSequential benchmarks sequential stereo processing.
func BenchmarkProcessSequential(b *testing.B) {
	benchmarkProcess(b, false)
}

// BenchmarkProcessParallel benchmarks parallel stereo processing.
func BenchmarkProcessParallel(b *testing.B) {
	benchmarkProcess(b, true)
}

func benchmarkProcess(b *testing.B, parallel bool) {
	b.Helper()

	const numSamples = 44100 // 1 second of audio

	settings, err := GetPreset(PresetMusic)
	if err != nil {
		b.Fatal(err)
	}
	e, err := New(&Config{SampleRate: testRate, Settings: settings, EnableParallel: parallel})
	if err != nil {
		b.Fatalf("Failed to create enhancer: %v", err)
	}

	buf := &Buffer{Layout: Stereo, Data: [][]float64{
		testutil.Noise(0.3, numSamples, 1),
		testutil.Noise(0.3, numSamples, 2),
	}}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := e.Process(buf); err != nil {
			b.Fatalf("Process failed: %v", err)
		}
	}
}

// BenchmarkStages benchmarks each stage on its own.
func BenchmarkStages(b *testing.B) {
	buf := &Buffer{Layout: Mono, Data: [][]float64{testutil.Noise(0.3, 44100, 7)}}

	for _, id := range []StageID{NoiseReduction, VocalEnhance, BassBoost, TrebleEnhance, WarmthFilter, Compression, Mastering} {
		b.Run(id.String(), func(b *testing.B) {
			var s Settings
			s.Set(id, 0.5)
			e, err := New(&Config{SampleRate: testRate, Settings: s})
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			for b.Loop() {
				if _, err := e.Process(buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkProcessBatch benchmarks batch processing with several workers.
func BenchmarkProcessBatch(b *testing.B) {
	e, err := New(&Config{SampleRate: testRate, Settings: Settings{BassBoost: 0.5, Compression: 0.5}})
	if err != nil {
		b.Fatal(err)
	}

	bufs := make([]*Buffer, 8)
	for i := range bufs {
		bufs[i] = &Buffer{Layout: Mono, Data: [][]float64{testutil.Noise(0.3, 22050, uint64(i))}}
	}

	ctx := context.Background()
	for b.Loop() {
		if _, err := e.ProcessBatch(ctx, bufs, 4); err != nil {
			b.Fatal(err)
		}
	}
}
