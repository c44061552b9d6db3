package synth

import (
	"math"
	"testing"
)

func TestDefaultKeyTableIsChromatic(t *testing.T) {
	kt := NewKeyTable(DefaultLayout, DefaultRootFreq)
	if len(kt) != 16 {
		t.Fatalf("expected 16 keys, got %d", len(kt))
	}

	prev := 0.0
	for i, r := range DefaultLayout {
		got, ok := kt.Frequency(r)
		if !ok {
			t.Fatalf("missing key %q", r)
		}
		want := DefaultRootFreq * math.Pow(2, float64(i)/12)
		if math.Abs(got-want)/want > 0.003 {
			t.Fatalf("key %q: got=%.3f Hz want=%.3f Hz", r, got, want)
		}
		if got <= prev {
			t.Fatalf("key %q not above previous key: %.3f <= %.3f", r, got, prev)
		}
		prev = got
	}

	a4, _ := kt.Frequency(',')
	if math.Abs(a4-440) > 1.0 {
		t.Fatalf("expected ',' to be A4, got %.3f Hz", a4)
	}
}

func TestKeyTableDuplicateKeepsFirstPitch(t *testing.T) {
	kt := NewKeyTable("aba", 100)
	if len(kt) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(kt))
	}
	a, _ := kt.Frequency('a')
	if math.Abs(a-100) > 0.3 {
		t.Fatalf("expected 'a' at root, got %.3f", a)
	}
	if _, ok := kt.Frequency('q'); ok {
		t.Fatalf("unexpected pitch for unmapped key")
	}
}
