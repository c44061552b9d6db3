package synth

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownWaveform is returned by WaveformByName for unsupported names.
var ErrUnknownWaveform = errors.New("unknown waveform")

// Waveform maps a frequency and an absolute time in seconds to an
// instantaneous amplitude in [-1, 1]. Implementations are pure and periodic
// with period 1/freq.
type Waveform func(freq, t float64) float64

// Sawtooth is a rising ramp crossing zero at every period boundary.
func Sawtooth(freq, t float64) float64 {
	x := t * freq
	return 2 * (x - math.Floor(0.5+x))
}

// Sine is a pure sinusoid.
func Sine(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// Square is +1 for the positive half of the sine cycle and -1 otherwise.
func Square(freq, t float64) float64 {
	if math.Sin(2*math.Pi*freq*t) > 0 {
		return 1
	}
	return -1
}

// Triangle folds the sawtooth phase, peaking at +1 and -1 a quarter period
// either side of each zero crossing.
func Triangle(freq, t float64) float64 {
	return 2*math.Abs(Sawtooth(freq, t+0.25/freq)) - 1
}

// WaveformByName resolves a preset or flag value to a Waveform.
func WaveformByName(name string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "saw", "sawtooth":
		return Sawtooth, nil
	case "sin", "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "tri", "triangle":
		return Triangle, nil
	default:
		return nil, fmt.Errorf("%w %q (expected saw, sine, square or triangle)", ErrUnknownWaveform, name)
	}
}
