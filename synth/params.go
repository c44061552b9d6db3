package synth

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidConfig is wrapped by construction and parameter validation
// failures.
var ErrInvalidConfig = errors.New("invalid synth config")

// Params holds all preset parameters.
type Params struct {
	Envelope Envelope

	Waveform string // saw, sine, square or triangle

	// VoiceGain is applied to the summed voices so that several keys held
	// together stay clear of clipping.
	VoiceGain float64

	RootFreq float64
	Layout   string
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		Envelope: Envelope{
			Attack:  0.1,
			Peak:    1.0,
			Decay:   0.1,
			Sustain: 0.9,
			Release: 0.2,
		},
		Waveform:  "saw",
		VoiceGain: 0.1,
		RootFreq:  DefaultRootFreq,
		Layout:    DefaultLayout,
	}
}

// Validate checks every field.
func (p *Params) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil params", ErrInvalidConfig)
	}
	if err := p.Envelope.Validate(); err != nil {
		return err
	}
	if _, err := WaveformByName(p.Waveform); err != nil {
		return err
	}
	if !isFinite(p.VoiceGain) || p.VoiceGain <= 0 {
		return fmt.Errorf("%w: voice_gain must be > 0", ErrInvalidConfig)
	}
	if !isFinite(p.RootFreq) || p.RootFreq <= 0 {
		return fmt.Errorf("%w: root_freq must be > 0", ErrInvalidConfig)
	}
	if p.Layout == "" || !utf8.ValidString(p.Layout) {
		return fmt.Errorf("%w: layout must be a non-empty UTF-8 string", ErrInvalidConfig)
	}
	return nil
}
