package synth

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

// semitoneToFreq converts a semitone offset from root to a frequency in Hz.
func semitoneToFreq(root float64, semitone int) float64 {
	return root * float64(pow2Approx(float32(semitone)/12.0))
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
