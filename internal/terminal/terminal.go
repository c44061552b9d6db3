// Package terminal turns raw terminal keystrokes into key press and release
// events.
//
// Terminals report characters, not key transitions. A held key shows up as
// one character followed by autorepeats, so a key counts as held while
// repeats keep arriving and is released once none has been seen for the
// hold window.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"golang.org/x/term"
)

// DefaultHold covers the initial autorepeat delay of common terminals.
const DefaultHold = 600 * time.Millisecond

// Action is the kind of key transition.
type Action int

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	if a == Press {
		return "press"
	}
	return "release"
}

// Event is one key transition.
type Event struct {
	Key    rune
	Action Action
}

// Host reads keys from an input stream and reports transitions.
type Host struct {
	in   io.Reader
	hold time.Duration
	poll time.Duration
	quit []rune
	now  func() time.Time
}

// NewHost creates a host reading from in. A non-positive hold uses
// DefaultHold. q, Ctrl-C and Ctrl-D end the session.
func NewHost(in io.Reader, hold time.Duration) *Host {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Host{
		in:   in,
		hold: hold,
		poll: 10 * time.Millisecond,
		quit: []rune{'q', 0x03, 0x04},
		now:  time.Now,
	}
}

// Run reads keys until ctx is cancelled, a quit key is typed or the input
// ends. When the input is a terminal it is switched to raw mode for the
// duration of the call. Keys still held when Run returns are released.
func (h *Host) Run(ctx context.Context, handle func(Event)) error {
	if f, ok := h.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: failed to set raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	keys := make(chan rune, 64)
	errc := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	// A blocked read cannot be interrupted; the goroutine exits with the
	// next keystroke or at process exit.
	go h.readLoop(keys, errc, done)

	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	held := newHoldTracker(h.hold)
	release := func(r rune) { handle(Event{Key: r, Action: Release}) }
	defer held.releaseAll(release)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-keys:
			if !ok {
				if err := <-errc; !errors.Is(err, io.EOF) {
					return fmt.Errorf("terminal: read: %w", err)
				}
				return nil
			}
			if slices.Contains(h.quit, r) {
				return nil
			}
			if held.press(r, h.now()) {
				handle(Event{Key: r, Action: Press})
			}
		case <-ticker.C:
			held.expire(h.now(), release)
		}
	}
}

func (h *Host) readLoop(keys chan<- rune, errc chan<- error, done <-chan struct{}) {
	defer close(keys)
	br := bufio.NewReader(h.in)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			errc <- err
			return
		}
		select {
		case keys <- r:
		case <-done:
			errc <- nil
			return
		}
	}
}

// holdTracker remembers when each held key was last seen.
type holdTracker struct {
	window time.Duration
	seen   map[rune]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{window: window, seen: make(map[rune]time.Time)}
}

// press records r at now and reports whether it is a new press rather than
// an autorepeat.
func (h *holdTracker) press(r rune, now time.Time) bool {
	_, held := h.seen[r]
	h.seen[r] = now
	return !held
}

// expire releases every key not seen within the window.
func (h *holdTracker) expire(now time.Time, release func(rune)) {
	var stale []rune
	for r, last := range h.seen {
		if now.Sub(last) >= h.window {
			stale = append(stale, r)
		}
	}
	slices.Sort(stale)
	for _, r := range stale {
		delete(h.seen, r)
		release(r)
	}
}

func (h *holdTracker) releaseAll(release func(rune)) {
	keys := make([]rune, 0, len(h.seen))
	for r := range h.seen {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	for _, r := range keys {
		delete(h.seen, r)
		release(r)
	}
}
