package terminal

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

func collect(t *testing.T, input string) []Event {
	t.Helper()
	h := NewHost(strings.NewReader(input), time.Hour)
	var events []Event
	if err := h.Run(context.Background(), func(ev Event) { events = append(events, ev) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return events
}

func TestRunEmitsPressAndReleasesOnEOF(t *testing.T) {
	got := collect(t, "zx")
	want := []Event{
		{Key: 'z', Action: Press},
		{Key: 'x', Action: Press},
		{Key: 'x', Action: Release},
		{Key: 'z', Action: Release},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events mismatch:\n got=%v\nwant=%v", got, want)
	}
}

func TestAutorepeatDoesNotRetrigger(t *testing.T) {
	got := collect(t, "zzzz")
	want := []Event{
		{Key: 'z', Action: Press},
		{Key: 'z', Action: Release},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events mismatch:\n got=%v\nwant=%v", got, want)
	}
}

func TestQuitKeyEndsSession(t *testing.T) {
	for _, in := range []string{"zqx", "z\x03x", "z\x04x"} {
		got := collect(t, in)
		want := []Event{
			{Key: 'z', Action: Press},
			{Key: 'z', Action: Release},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("input %q:\n got=%v\nwant=%v", in, got, want)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := NewHost(pr, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx, func(Event) {}) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestRunReportsReadErrors(t *testing.T) {
	h := NewHost(failingReader{}, time.Hour)
	if err := h.Run(context.Background(), func(Event) {}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestHoldTrackerReleasesAfterWindow(t *testing.T) {
	base := time.Unix(0, 0)
	h := newHoldTracker(600 * time.Millisecond)
	var released []rune
	release := func(r rune) { released = append(released, r) }

	if !h.press('z', base) {
		t.Fatalf("first press should be new")
	}
	if h.press('z', base.Add(400*time.Millisecond)) {
		t.Fatalf("repeat should not be a new press")
	}
	h.press('x', base.Add(100*time.Millisecond))

	h.expire(base.Add(900*time.Millisecond), release)
	if !reflect.DeepEqual(released, []rune{'x'}) {
		t.Fatalf("expected only x released, got %q", released)
	}

	h.expire(base.Add(1000*time.Millisecond), release)
	if !reflect.DeepEqual(released, []rune{'x', 'z'}) {
		t.Fatalf("expected z released once its repeats stopped, got %q", released)
	}

	if !h.press('z', base.Add(1100*time.Millisecond)) {
		t.Fatalf("press after release should be new")
	}
}
