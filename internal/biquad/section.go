package biquad

// Coefficients of one second-order section with a0 normalized to 1.
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is a single biquad with its two-sample state.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters buf in place, carrying state across calls.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the state.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// Apply filters samples from zero state and returns a new slice.
// The input is not modified.
func Apply(samples []float64, c Coefficients) []float64 {
	out := append([]float64(nil), samples...)
	NewSection(c).ProcessBlock(out)
	return out
}

// Cascade runs the same coefficients through several sections in series.
type Cascade struct {
	sections []Section
}

// NewCascade builds a cascade of n identical sections. n < 1 is treated as 1.
func NewCascade(c Coefficients, n int) *Cascade {
	n = max(n, 1)
	sections := make([]Section, n)
	for i := range sections {
		sections[i].Coefficients = c
	}
	return &Cascade{sections: sections}
}

// Len returns the number of sections.
func (c *Cascade) Len() int { return len(c.sections) }

// Reset clears every section.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// ProcessBlock filters buf in place through every section.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Apply resets the cascade and returns a filtered copy of samples.
func (c *Cascade) Apply(samples []float64) []float64 {
	c.Reset()
	out := append([]float64(nil), samples...)
	c.ProcessBlock(out)
	return out
}
