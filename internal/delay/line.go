// Package delay implements the time-delay effects: a circular delay line,
// multi-tap reverb, LFO-modulated chorus and waveshaping distortion.
package delay

// Line is a fixed-capacity circular delay line. Tap(d) returns the sample
// written d writes ago; positions not yet written read as zero.
type Line struct {
	data     []float64
	capacity int
	writePos int
}

// NewLine creates a line that can look back capacity-1 samples.
func NewLine(capacity int) *Line {
	if capacity < 1 {
		capacity = 1
	}
	return &Line{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Capacity returns the number of stored samples.
func (l *Line) Capacity() int { return l.capacity }

// Write pushes one sample.
func (l *Line) Write(x float64) {
	l.data[l.writePos] = x
	l.writePos++
	if l.writePos == l.capacity {
		l.writePos = 0
	}
}

// Tap reads the sample written d writes ago. Tap(0) is the most recent
// sample. d outside [0, capacity) reads as zero.
func (l *Line) Tap(d int) float64 {
	if d < 0 || d >= l.capacity {
		return 0
	}
	idx := l.writePos - 1 - d
	if idx < 0 {
		idx += l.capacity
	}
	return l.data[idx]
}

// Reset zeroes the line.
func (l *Line) Reset() {
	clear(l.data)
	l.writePos = 0
}
