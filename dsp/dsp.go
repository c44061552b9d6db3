// Package dsp holds small per-sample helpers used on the render path. None of
// them allocate.
package dsp

import (
	"encoding/binary"
	"math"
)

// Clamp limits x to the [-1, 1] range of a float output stream.
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// FanOut writes the same mono sample to every channel of one interleaved
// frame.
func FanOut(frame []float32, sample float32) {
	for i := range frame {
		frame[i] = sample
	}
}

// EncodeFloat32LE writes src into dst as little-endian IEEE 754 floats and
// returns the number of bytes written. Samples that do not fit are dropped.
func EncodeFloat32LE(dst []byte, src []float32) int {
	n := len(dst) / 4
	if n > len(src) {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(src[i]))
	}
	return n * 4
}
