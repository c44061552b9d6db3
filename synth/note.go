package synth

// Note is a single voice: one key's oscillator plus its envelope position.
// A Note does not decide its own lifetime; the registry prunes it once Done
// reports true.
type Note struct {
	key        rune
	freq       float64
	wave       Waveform
	start      float64
	releasedAt float64
	released   bool
}

// NewNote creates a held note that started at time start.
func NewNote(key rune, freq float64, wave Waveform, start float64) *Note {
	if wave == nil {
		wave = Sawtooth
	}
	return &Note{
		key:   key,
		freq:  freq,
		wave:  wave,
		start: start,
	}
}

func (n *Note) Key() rune { return n.key }
func (n *Note) Frequency() float64 { return n.freq }
func (n *Note) Start() float64 { return n.start }
func (n *Note) Released() bool { return n.released }

// ReleasedAt returns the release time and whether the note has been released.
func (n *Note) ReleasedAt() (float64, bool) {
	return n.releasedAt, n.released
}

// Release marks the note as released at time t. Only the first call has an
// effect. A release time earlier than the start time is clamped to it.
func (n *Note) Release(t float64) {
	if n.released {
		return
	}
	if t < n.start {
		t = n.start
	}
	n.releasedAt = t
	n.released = true
}

// State returns the envelope state of the note at time t.
func (n *Note) State(t float64) EnvelopeState {
	if n.released {
		return Released(n.releasedAt-n.start, t-n.releasedAt)
	}
	return Held(t - n.start)
}

// Sample returns the note's output at time t under envelope env.
func (n *Note) Sample(t float64, env Envelope) float64 {
	return env.Amplitude(n.State(t)) * n.wave(n.freq, t)
}

// Done reports whether the release ramp has fully decayed at time t.
func (n *Note) Done(t float64, env Envelope) bool {
	return n.released && t-n.releasedAt >= env.Release
}
