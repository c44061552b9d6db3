package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-synth/synth"
)

// File is the JSON schema for synth presets. Absent fields keep their
// defaults.
type File struct {
	Attack    *float64 `json:"attack"`
	Peak      *float64 `json:"peak"`
	Decay     *float64 `json:"decay"`
	Sustain   *float64 `json:"sustain"`
	Release   *float64 `json:"release"`
	Waveform  string   `json:"waveform"`
	VoiceGain *float64 `json:"voice_gain"`
	RootFreq  *float64 `json:"root_freq"`
	Layout    string   `json:"layout"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*synth.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes preset JSON and applies it on top of default params.
func Parse(data []byte) (*synth.Params, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	p := synth.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *synth.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	env := dst.Envelope
	if f.Attack != nil {
		if *f.Attack < 0 {
			return fmt.Errorf("attack must be >= 0")
		}
		env.Attack = *f.Attack
	}
	if f.Peak != nil {
		if *f.Peak <= 0 {
			return fmt.Errorf("peak must be > 0")
		}
		env.Peak = *f.Peak
	}
	if f.Decay != nil {
		if *f.Decay < 0 {
			return fmt.Errorf("decay must be >= 0")
		}
		env.Decay = *f.Decay
	}
	if f.Sustain != nil {
		env.Sustain = *f.Sustain
	}
	if f.Release != nil {
		if *f.Release < 0 {
			return fmt.Errorf("release must be >= 0")
		}
		env.Release = *f.Release
	}
	if env.Sustain < 0 || env.Sustain > env.Peak {
		return fmt.Errorf("sustain must be in [0, peak]")
	}
	if err := env.Validate(); err != nil {
		return err
	}
	dst.Envelope = env

	if f.Waveform != "" {
		name := strings.TrimSpace(f.Waveform)
		if _, err := synth.WaveformByName(name); err != nil {
			return err
		}
		dst.Waveform = name
	}
	if f.VoiceGain != nil {
		if *f.VoiceGain <= 0 {
			return fmt.Errorf("voice_gain must be > 0")
		}
		dst.VoiceGain = *f.VoiceGain
	}
	if f.RootFreq != nil {
		if *f.RootFreq <= 0 {
			return fmt.Errorf("root_freq must be > 0")
		}
		dst.RootFreq = *f.RootFreq
	}
	if f.Layout != "" {
		dst.Layout = f.Layout
	}
	return dst.Validate()
}
