package main

import (
	"fmt"

	"github.com/cwbudde/algo-synth/internal/output"
	"github.com/cwbudde/algo-synth/internal/output/otoplayer"
	"github.com/cwbudde/algo-synth/internal/output/paplayer"
)

func openPlayer(backend string, r output.Renderer, sampleRate, channels, bufferFrames int) (output.Player, error) {
	switch backend {
	case "oto":
		p, err := otoplayer.New(r, sampleRate, channels, bufferFrames)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "portaudio", "pa":
		p, err := paplayer.New(r, sampleRate, channels, bufferFrames)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected oto or portaudio)", backend)
	}
}
