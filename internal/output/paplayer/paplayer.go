// Package paplayer plays a synth through a PortAudio callback stream.
package paplayer

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-synth/internal/output"
	"github.com/gordonklaus/portaudio"
)

// Player owns a default-device output stream whose callback renders
// directly into PortAudio's buffer.
type Player struct {
	mu     sync.Mutex
	stream *portaudio.Stream
}

// New initializes PortAudio and opens the default output device.
func New(r output.Renderer, sampleRate, channels, bufferFrames int) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), bufferFrames, output.Callback(r, channels))
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio open: %w", err)
	}
	return &Player{stream: stream}, nil
}

// Start begins pulling audio.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return fmt.Errorf("portaudio: stream closed")
	}
	return p.stream.Start()
}

// Close stops the stream and releases PortAudio.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return nil
	}
	_ = p.stream.Stop()
	err := p.stream.Close()
	p.stream = nil
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
