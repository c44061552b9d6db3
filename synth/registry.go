package synth

// noteRegistry maps each key to its sounding voice. It is not synchronized;
// Synth guards it with its mutex. Every operation is a single map access or
// one pass over the (small) set of held and decaying notes.
type noteRegistry struct {
	notes map[rune]*Note
}

func newNoteRegistry(capacity int) *noteRegistry {
	return &noteRegistry{notes: make(map[rune]*Note, capacity)}
}

// press installs n for its key, replacing any voice already sounding there.
func (r *noteRegistry) press(n *Note) {
	r.notes[n.key] = n
}

// release marks the key's voice released at t. Unknown keys are ignored.
func (r *noteRegistry) release(key rune, t float64) bool {
	n, ok := r.notes[key]
	if !ok {
		return false
	}
	n.Release(t)
	return true
}

// mix sums every voice at time t and drops the ones whose release ramp has
// finished.
func (r *noteRegistry) mix(t float64, env Envelope) float64 {
	var sum float64
	for key, n := range r.notes {
		if n.Done(t, env) {
			delete(r.notes, key)
			continue
		}
		sum += n.Sample(t, env)
	}
	return sum
}

func (r *noteRegistry) get(key rune) (*Note, bool) {
	n, ok := r.notes[key]
	return n, ok
}

func (r *noteRegistry) len() int {
	return len(r.notes)
}
