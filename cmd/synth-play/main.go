package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-synth/internal/terminal"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Command-line flags
	presetPath := flag.String("preset", "", "Preset JSON file path (defaults built in when empty)")
	backend := flag.String("backend", "oto", "Audio backend: oto or portaudio")
	sampleRate := flag.Int("sample-rate", 48000, "Output sample rate in Hz")
	channels := flag.Int("channels", 2, "Output channel count")
	bufferFrames := flag.Int("buffer", 512, "Device buffer size in frames")
	waveform := flag.String("waveform", "", "Waveform override: saw, sine, square or triangle")
	hold := flag.Duration("hold", terminal.DefaultHold, "Release a key after this long without autorepeat")
	flag.Parse()

	params, err := loadParams(*presetPath, *waveform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset: %v\n", err)
		os.Exit(1)
	}

	s, err := synth.New(*sampleRate, *channels, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating synth: %v\n", err)
		os.Exit(1)
	}

	player, err := openPlayer(*backend, s, *sampleRate, *channels, *bufferFrames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s output: %v\n", *backend, err)
		os.Exit(1)
	}
	if err := player.Start(); err != nil {
		player.Close()
		fmt.Fprintf(os.Stderr, "Error starting %s output: %v\n", *backend, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Playing %s at %d Hz, %d channels via %s. Keys: %s  (q quits)\r\n",
		params.Waveform, *sampleRate, *channels, *backend, params.Layout)

	err = run(s, terminal.NewHost(os.Stdin, *hold))
	if cerr := player.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadParams(path, waveform string) (*synth.Params, error) {
	params := synth.NewDefaultParams()
	if path != "" {
		p, err := preset.LoadJSON(path)
		if err != nil {
			return nil, err
		}
		params = p
	}
	if w := strings.TrimSpace(waveform); w != "" {
		if _, err := synth.WaveformByName(w); err != nil {
			return nil, err
		}
		params.Waveform = w
	}
	return params, nil
}

// run feeds terminal key events to the synth until the user quits, a signal
// arrives or the render path fails.
func run(s *synth.Synth, host *terminal.Host) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	g.Go(func() error {
		defer quit()
		err := host.Run(ctx, func(ev terminal.Event) {
			switch ev.Action {
			case terminal.Press:
				s.NoteOn(ev.Key)
			case terminal.Release:
				s.NoteOff(ev.Key)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-s.Failed():
			return s.Err()
		case <-ctx.Done():
			return nil
		}
	})
	err := g.Wait()
	if err == nil {
		// Let release tails ring out before the device is closed.
		time.Sleep(time.Duration(s.Envelope().Release * float64(time.Second)))
	}
	return err
}
