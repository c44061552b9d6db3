package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/synth"
)

func TestLoadParamsDefaults(t *testing.T) {
	p, err := loadParams("", "")
	if err != nil {
		t.Fatalf("loadParams: %v", err)
	}
	if *p != *synth.NewDefaultParams() {
		t.Fatalf("expected default params, got %+v", p)
	}
}

func TestLoadParamsWaveformOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	if err := os.WriteFile(path, []byte(`{"waveform": "square", "release": 0.4}`), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := loadParams(path, "sine")
	if err != nil {
		t.Fatalf("loadParams: %v", err)
	}
	if p.Waveform != "sine" || p.Envelope.Release != 0.4 {
		t.Fatalf("override not applied: %+v", p)
	}

	if _, err := loadParams(path, "noise"); !errors.Is(err, synth.ErrUnknownWaveform) {
		t.Fatalf("expected ErrUnknownWaveform, got %v", err)
	}
}

func TestOpenPlayerRejectsUnknownBackend(t *testing.T) {
	s, err := synth.New(48000, 2, nil)
	if err != nil {
		t.Fatalf("synth.New: %v", err)
	}
	_, err = openPlayer("jack", s, 48000, 2, 512)
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}
