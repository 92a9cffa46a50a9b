// Package audio defines the planar sample buffer passed between effect stages.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-audio-enhancer/internal/simdops"
)

// ErrInvalidShape is returned when a buffer has an unsupported channel count
// or channels of different lengths.
var ErrInvalidShape = errors.New("invalid buffer shape")

// ChannelLayout tags a buffer as mono or stereo.
type ChannelLayout int

const (
	Mono   ChannelLayout = 1
	Stereo ChannelLayout = 2
)

// String returns the layout name.
func (l ChannelLayout) String() string {
	switch l {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return fmt.Sprintf("ChannelLayout(%d)", int(l))
	}
}

// LayoutFor maps a channel count to its layout.
func LayoutFor(channels int) (ChannelLayout, error) {
	switch channels {
	case 1:
		return Mono, nil
	case 2:
		return Stereo, nil
	default:
		return 0, fmt.Errorf("%w: %d channels, want 1 or 2", ErrInvalidShape, channels)
	}
}

// Buffer holds planar float64 samples, one slice per channel.
// All channels have the same length.
type Buffer struct {
	Layout ChannelLayout
	Data   [][]float64
}

// New allocates a zeroed buffer of the given frame count.
func New(frames int, layout ChannelLayout) (*Buffer, error) {
	if layout != Mono && layout != Stereo {
		return nil, fmt.Errorf("%w: unsupported layout %v", ErrInvalidShape, layout)
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: negative frame count %d", ErrInvalidShape, frames)
	}
	data := make([][]float64, int(layout))
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	return &Buffer{Layout: layout, Data: data}, nil
}

// FromChannels wraps existing channel slices without copying.
func FromChannels(channels [][]float64) (*Buffer, error) {
	layout, err := LayoutFor(len(channels))
	if err != nil {
		return nil, err
	}
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != len(channels[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidShape, ch, len(channels[ch]), len(channels[0]))
		}
	}
	return &Buffer{Layout: layout, Data: channels}, nil
}

// FromInterleaved de-interleaves samples into a new planar buffer.
func FromInterleaved(samples []float64, channels int) (*Buffer, error) {
	layout, err := LayoutFor(channels)
	if err != nil {
		return nil, err
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidShape, len(samples), channels)
	}
	frames := len(samples) / channels
	buf, _ := New(frames, layout)
	if layout == Mono {
		copy(buf.Data[0], samples)
		return buf, nil
	}
	simdops.Deinterleave2(buf.Data[0], buf.Data[1], samples)
	return buf, nil
}

// Validate checks the layout matches the data.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidShape)
	}
	if len(b.Data) != int(b.Layout) {
		return fmt.Errorf("%w: layout %v with %d channels", ErrInvalidShape, b.Layout, len(b.Data))
	}
	for ch := 1; ch < len(b.Data); ch++ {
		if len(b.Data[ch]) != len(b.Data[0]) {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidShape, ch, len(b.Data[ch]), len(b.Data[0]))
		}
	}
	return nil
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.Data) }

// IsStereo reports whether the buffer has two channels.
func (b *Buffer) IsStereo() bool { return b.Layout == Stereo }

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float64, len(b.Data))
	for ch, s := range b.Data {
		data[ch] = append([]float64(nil), s...)
	}
	return &Buffer{Layout: b.Layout, Data: data}
}

// Interleaved returns the samples in frame order (L, R, L, R, ...).
func (b *Buffer) Interleaved() []float64 {
	if b.Layout == Mono {
		return append([]float64(nil), b.Data[0]...)
	}
	out := make([]float64, 2*b.Frames())
	simdops.Interleave2(out, b.Data[0], b.Data[1])
	return out
}

// Peak returns the largest absolute sample across all channels.
func (b *Buffer) Peak() float64 {
	var peak float64
	for _, s := range b.Data {
		peak = math.Max(peak, simdops.MaxAbs(s))
	}
	return peak
}

// Scale multiplies every sample by g in place.
func (b *Buffer) Scale(g float64) {
	for _, s := range b.Data {
		simdops.Scale(s, s, g)
	}
}

// Equal reports whether both buffers have the same layout and bit-identical samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Layout != other.Layout || len(b.Data) != len(other.Data) {
		return false
	}
	for ch := range b.Data {
		if len(b.Data[ch]) != len(other.Data[ch]) {
			return false
		}
		for i, v := range b.Data[ch] {
			if math.Float64bits(v) != math.Float64bits(other.Data[ch][i]) {
				return false
			}
		}
	}
	return true
}

// ChannelFunc transforms one channel. It must return a slice of the same length.
type ChannelFunc func(samples []float64) ([]float64, error)

// MapChannels applies fn to each channel and returns a new buffer. When
// parallel is set and the buffer is stereo, channels run on separate
// goroutines; the first error is returned and a panic in fn becomes an
// error.
func (b *Buffer) MapChannels(parallel bool, fn ChannelFunc) (*Buffer, error) {
	out := make([][]float64, len(b.Data))

	if !parallel || len(b.Data) < 2 {
		for ch, s := range b.Data {
			res, err := fn(s)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			out[ch] = res
		}
		return b.checked(out)
	}

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	for ch, s := range b.Data {
		wg.Add(1)
		go func(ch int, s []float64) {
			defer wg.Done()
			// A panic on a worker goroutine cannot reach the caller's recover.
			defer func() {
				if r := recover(); r != nil {
					setErr(fmt.Errorf("channel %d: panic: %v", ch, r))
				}
			}()
			res, err := fn(s)
			if err != nil {
				setErr(fmt.Errorf("channel %d: %w", ch, err))
				return
			}
			out[ch] = res
		}(ch, s)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return b.checked(out)
}

func (b *Buffer) checked(data [][]float64) (*Buffer, error) {
	frames := b.Frames()
	for ch, s := range data {
		if len(s) != frames {
			return nil, fmt.Errorf("%w: channel %d produced %d frames, want %d",
				ErrInvalidShape, ch, len(s), frames)
		}
	}
	return &Buffer{Layout: b.Layout, Data: data}, nil
}
