// Package wavio reads and writes whole PCM WAV files as planar float
// buffers scaled to [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-enhancer/internal/audio"
)

// ErrUnsupportedFormat is returned for WAV files that are not mono or
// stereo 16, 24 or 32-bit PCM.
var ErrUnsupportedFormat = errors.New("unsupported WAV format")

// Sample format constants
const (
	BitsPerSample16 = 16
	BitsPerSample24 = 24
	BitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// formatPCM is the WAV audio format tag for integer PCM.
	formatPCM = 1
)

// File is a decoded WAV file.
type File struct {
	Buffer     *audio.Buffer
	SampleRate int
	BitDepth   int
}

// Read decodes a whole WAV file.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	channels := pcm.Format.NumChannels
	if channels != int(audio.Mono) && channels != int(audio.Stereo) {
		return nil, fmt.Errorf("%w: %d channels, want mono or stereo", ErrUnsupportedFormat, channels)
	}
	maxVal, err := MaxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, len(pcm.Data))
	inv := 1 / maxVal
	for i, v := range pcm.Data {
		samples[i] = float64(v) * inv
	}

	buf, err := audio.FromInterleaved(samples, channels)
	if err != nil {
		return nil, err
	}

	return &File{
		Buffer:     buf,
		SampleRate: pcm.Format.SampleRate,
		BitDepth:   bitDepth,
	}, nil
}

// Write encodes buf as PCM at bitDepth. Samples are clipped to the
// integer range.
func Write(path string, buf *audio.Buffer, sampleRate, bitDepth int) (err error) {
	maxVal, err := MaxValue(bitDepth)
	if err != nil {
		return err
	}
	if err := buf.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	interleaved := buf.Interleaved()
	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = ToInt(v, maxVal)
	}

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, buf.Channels(), formatPCM)
	pcm := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: buf.Channels(), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(pcm); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// MaxValue returns the full-scale integer value for a PCM bit depth.
func MaxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case BitsPerSample16:
		return maxInt16, nil
	case BitsPerSample24:
		return maxInt24, nil
	case BitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}

// ToInt converts a float sample to a clipped, rounded PCM integer.
func ToInt(v, maxVal float64) int {
	s := math.Round(v * maxVal)
	return int(math.Max(-maxVal, math.Min(maxVal, s)))
}
