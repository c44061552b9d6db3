package synth

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-synth/dsp"
	"github.com/go-audio/audio"
)

// ErrRenderPanic wraps a panic recovered on the render path. Once it is
// reported the synth only produces silence.
var ErrRenderPanic = errors.New("render failed")

// Synth is the polyphonic engine. Key events arrive on the control path
// (NoteOn, NoteOff, the Set* methods) while the audio callback drives the
// render path (Render, RenderInterleaved). Both share one mutex whose
// critical sections are a single map operation on the control side and one
// frame's mix on the render side; nothing blocks while holding it.
type Synth struct {
	mu    sync.Mutex
	clock SampleClock
	notes *noteRegistry
	env   Envelope
	wave  Waveform
	gain  float64

	keys     KeyTable
	channels int

	dead     atomic.Bool
	failed   chan struct{}
	failOnce sync.Once
	errMu    sync.Mutex
	err      error
}

// New creates a synth for an output running at sampleRate with the given
// number of interleaved channels. A nil params uses NewDefaultParams.
func New(sampleRate, channels int, params *Params) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidConfig, sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be > 0, got %d", ErrInvalidConfig, channels)
	}
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	wave, err := WaveformByName(params.Waveform)
	if err != nil {
		return nil, err
	}
	keys := NewKeyTable(params.Layout, params.RootFreq)
	return &Synth{
		clock:    NewSampleClock(sampleRate),
		notes:    newNoteRegistry(2 * len(keys)),
		env:      params.Envelope,
		wave:     wave,
		gain:     params.VoiceGain,
		keys:     keys,
		channels: channels,
		failed:   make(chan struct{}),
	}, nil
}

// NoteOn starts a voice for key at the current clock time, replacing the
// key's previous voice if it is still sounding. Keys missing from the key
// table are ignored and NoteOn returns false.
func (s *Synth) NoteOn(key rune) bool {
	freq, ok := s.keys.Frequency(key)
	if !ok {
		return false
	}
	n := &Note{key: key, freq: freq}

	s.mu.Lock()
	n.start = s.clock.Now()
	n.wave = s.wave
	s.notes.press(n)
	s.mu.Unlock()
	return true
}

// NoteOff releases key's voice at the current clock time. Releasing a key
// that is not sounding, or releasing it twice, does nothing.
func (s *Synth) NoteOff(key rune) {
	s.mu.Lock()
	s.notes.release(key, s.clock.Now())
	s.mu.Unlock()
}

// SetEnvelope replaces the envelope used for every voice from the next
// frame on, including voices already sounding.
func (s *Synth) SetEnvelope(env Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.env = env
	s.mu.Unlock()
	return nil
}

// Envelope returns the envelope currently applied to the voices.
func (s *Synth) Envelope() Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

// SetWaveform changes the oscillator for notes started after the call.
func (s *Synth) SetWaveform(w Waveform) {
	if w == nil {
		return
	}
	s.mu.Lock()
	s.wave = w
	s.mu.Unlock()
}

// SetVoiceGain changes the fixed per-voice attenuation.
func (s *Synth) SetVoiceGain(g float64) error {
	if !isFinite(g) || g <= 0 {
		return fmt.Errorf("%w: voice gain must be > 0", ErrInvalidConfig)
	}
	s.mu.Lock()
	s.gain = g
	s.mu.Unlock()
	return nil
}

// Now returns the render clock time in seconds.
func (s *Synth) Now() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now()
}

// ActiveVoices returns the number of held or still-decaying voices.
func (s *Synth) ActiveVoices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.len()
}

// Frequency returns the pitch bound to key.
func (s *Synth) Frequency(key rune) (float64, bool) {
	return s.keys.Frequency(key)
}

func (s *Synth) SampleRate() int { return s.clock.SampleRate() }
func (s *Synth) Channels() int { return s.channels }

// Render fills buf with interleaved frames. The channel count comes from the
// buffer format, or from the synth when the buffer has no format.
func (s *Synth) Render(buf *audio.Float32Buffer) {
	if buf == nil {
		return
	}
	channels := s.channels
	if buf.Format != nil {
		channels = buf.Format.NumChannels
	}
	s.RenderInterleaved(buf.Data, channels)
}

// RenderInterleaved fills out with len(out)/channels frames, writing the
// same mono mix to every channel of a frame. The clock advances once per
// frame, after that frame has been mixed. Samples of a trailing partial
// frame are zeroed. Empty buffers and non-positive channel counts leave
// the synth untouched.
func (s *Synth) RenderInterleaved(out []float32, channels int) {
	if channels <= 0 || len(out) == 0 {
		return
	}
	if s.dead.Load() {
		clear(out)
		return
	}
	defer s.recoverRender(out)

	frames := len(out) / channels
	for i := 0; i < frames; i++ {
		dsp.FanOut(out[i*channels:(i+1)*channels], s.nextFrame())
	}
	clear(out[frames*channels:])
}

func (s *Synth) nextFrame() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.clock.Now()
	mix := s.notes.mix(t, s.env) * s.gain
	s.clock.Tick()
	return dsp.Clamp(float32(dspcore.FlushDenormals(mix)))
}

func (s *Synth) recoverRender(out []float32) {
	r := recover()
	if r == nil {
		return
	}
	clear(out)
	s.fail(fmt.Errorf("%w: %v", ErrRenderPanic, r))
}

func (s *Synth) fail(err error) {
	s.failOnce.Do(func() {
		s.errMu.Lock()
		s.err = err
		s.errMu.Unlock()
		s.dead.Store(true)
		close(s.failed)
	})
}

// Failed is closed once the render path has failed. Hosts should stop their
// audio stream when it fires.
func (s *Synth) Failed() <-chan struct{} {
	return s.failed
}

// Err returns the render failure, or nil while the synth is healthy.
func (s *Synth) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}
