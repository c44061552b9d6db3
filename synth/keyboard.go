package synth

// DefaultLayout is the bottom two rows of a QWERTY keyboard laid out like a
// piano: the lower row carries the white keys, the row above the black keys.
const DefaultLayout = "zsxcfvgbnjmk,l./"

// DefaultRootFreq is the frequency of the first key of the layout (A3).
const DefaultRootFreq = 220.0

// KeyTable maps key symbols to frequencies in Hz.
type KeyTable map[rune]float64

// NewKeyTable assigns ascending equal-tempered semitones above root to the
// runes of layout, in order. A rune that appears twice keeps its first pitch.
func NewKeyTable(layout string, root float64) KeyTable {
	kt := make(KeyTable, len(layout))
	n := 0
	for _, r := range layout {
		if _, dup := kt[r]; !dup {
			kt[r] = semitoneToFreq(root, n)
		}
		n++
	}
	return kt
}

// Frequency looks up the pitch bound to key.
func (kt KeyTable) Frequency(key rune) (float64, bool) {
	f, ok := kt[key]
	return f, ok
}
