package synth

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is wrapped by every Envelope.Validate failure.
var ErrInvalidEnvelope = errors.New("invalid envelope")

// Stage names the envelope segment a state falls into.
type Stage int

const (
	StageAttack Stage = iota
	StageDecay
	StageSustain
	StageRelease
	StageIdle
)

func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "idle"
	}
}

// Envelope is a linear ADSR definition. Durations are in seconds, levels are
// linear gain.
//
// The envelope keeps no per-note state: the gain is re-derived from elapsed
// time on every call, so evaluating it twice for the same state always
// yields the same value.
type Envelope struct {
	Attack  float64
	Peak    float64
	Decay   float64
	Sustain float64
	Release float64
}

// EnvelopeState is the position of a note within its envelope.
type EnvelopeState struct {
	released bool
	heldFor  float64
	elapsed  float64
}

// Held is the state of a key elapsed seconds after it was pressed.
func Held(elapsed float64) EnvelopeState {
	return EnvelopeState{elapsed: elapsed}
}

// Released is the state of a key elapsed seconds after it was released,
// having been held for heldFor seconds before that.
func Released(heldFor, elapsed float64) EnvelopeState {
	return EnvelopeState{released: true, heldFor: heldFor, elapsed: elapsed}
}

// IsReleased reports whether the state is in the release segment.
func (s EnvelopeState) IsReleased() bool { return s.released }

// Elapsed returns the time spent in the current (held or released) phase.
func (s EnvelopeState) Elapsed() float64 { return s.elapsed }

// Validate checks the envelope for values that would produce a gain outside
// [0, Peak] or a non-finite slope.
func (e Envelope) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"attack", e.Attack},
		{"peak", e.Peak},
		{"decay", e.Decay},
		{"sustain", e.Sustain},
		{"release", e.Release},
	} {
		if !isFinite(f.v) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidEnvelope, f.name)
		}
	}
	if e.Attack < 0 {
		return fmt.Errorf("%w: attack must be >= 0", ErrInvalidEnvelope)
	}
	if e.Decay < 0 {
		return fmt.Errorf("%w: decay must be >= 0", ErrInvalidEnvelope)
	}
	if e.Release < 0 {
		return fmt.Errorf("%w: release must be >= 0", ErrInvalidEnvelope)
	}
	if e.Peak <= 0 {
		return fmt.Errorf("%w: peak must be > 0", ErrInvalidEnvelope)
	}
	if e.Sustain < 0 || e.Sustain > e.Peak {
		return fmt.Errorf("%w: sustain must be in [0, peak]", ErrInvalidEnvelope)
	}
	return nil
}

// Amplitude returns the gain for the given state.
func (e Envelope) Amplitude(s EnvelopeState) float64 {
	if !s.released {
		return e.held(s.elapsed)
	}
	if s.elapsed >= e.Release {
		return 0
	}
	// Ramp from wherever the held segment was at release time, which is
	// not necessarily the sustain level.
	start := e.held(s.heldFor)
	el := s.elapsed
	if el < 0 {
		el = 0
	}
	return start * (1 - el/e.Release)
}

func (e Envelope) held(el float64) float64 {
	if el < 0 {
		el = 0
	}
	if el < e.Attack {
		return e.Peak * el / e.Attack
	}
	el -= e.Attack
	if el < e.Decay {
		return e.Peak + (e.Sustain-e.Peak)*el/e.Decay
	}
	return e.Sustain
}

// Stage reports which segment the state falls into. A released state whose
// ramp has completed is StageIdle.
func (e Envelope) Stage(s EnvelopeState) Stage {
	if s.released {
		if s.elapsed >= e.Release {
			return StageIdle
		}
		return StageRelease
	}
	switch {
	case s.elapsed < e.Attack:
		return StageAttack
	case s.elapsed < e.Attack+e.Decay:
		return StageDecay
	default:
		return StageSustain
	}
}

