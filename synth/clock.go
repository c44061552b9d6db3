package synth

// SampleClock is the render-side time base. Time is derived from an integer
// frame count, so it advances by exactly one sample period per Tick and
// never drifts.
type SampleClock struct {
	sampleRate int
	frames     uint64
}

// NewSampleClock returns a clock at time zero.
func NewSampleClock(sampleRate int) SampleClock {
	return SampleClock{sampleRate: sampleRate}
}

// Now returns the current time in seconds.
func (c *SampleClock) Now() float64 {
	return float64(c.frames) / float64(c.sampleRate)
}

// Tick advances the clock by one frame.
func (c *SampleClock) Tick() {
	c.frames++
}

func (c *SampleClock) Frames() uint64 { return c.frames }
func (c *SampleClock) SampleRate() int { return c.sampleRate }
func (c *SampleClock) Period() float64 { return 1 / float64(c.sampleRate) }
