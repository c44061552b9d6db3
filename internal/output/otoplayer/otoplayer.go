// Package otoplayer plays a synth through an oto v3 context.
package otoplayer

import (
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/algo-synth/internal/output"
	"github.com/ebitengine/oto/v3"
)

// Player pulls float32 frames from a renderer whenever oto's buffer drains.
type Player struct {
	ctx    *oto.Context
	player *oto.Player

	started bool
	mutex   sync.Mutex // only for setup/control operations
}

// New opens the default output device. bufferFrames sets both oto's device
// buffer and the largest block rendered per Read.
func New(r output.Renderer, sampleRate, channels, bufferFrames int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx}
	// Oto reads in chunks larger than its device buffer; leave headroom so
	// Read stays allocation-free.
	p.player = ctx.NewPlayer(output.NewReader(r, channels, 4*bufferFrames))
	return p, nil
}

// Start begins playback.
func (p *Player) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
	return nil
}

// Close stops playback. The oto context itself lives until process exit.
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	return err
}
