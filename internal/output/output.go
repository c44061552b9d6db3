// Package output adapts the synth's render path to the two ways audio
// libraries ask for samples: pulled through an io.Reader of encoded bytes,
// or pushed into a float buffer from a stream callback.
package output

import "github.com/cwbudde/algo-synth/dsp"

// Renderer fills an interleaved float buffer. *synth.Synth implements it.
type Renderer interface {
	RenderInterleaved(out []float32, channels int)
}

// Player is a running audio output.
type Player interface {
	Start() error
	Close() error
}

// Reader renders float32 little-endian PCM on demand. The scratch buffer is
// sized up front so Read does not allocate for requests up to maxFrames.
type Reader struct {
	r        Renderer
	channels int
	scratch  []float32
}

// NewReader returns a Reader producing channels interleaved channels.
func NewReader(r Renderer, channels, maxFrames int) *Reader {
	if maxFrames < 1 {
		maxFrames = 1
	}
	return &Reader{
		r:        r,
		channels: channels,
		scratch:  make([]float32, maxFrames*channels),
	}
}

// Read fills p with whole frames. It never fails.
func (rd *Reader) Read(p []byte) (int, error) {
	frameBytes := 4 * rd.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	samples := frames * rd.channels
	if len(rd.scratch) < samples {
		// Only when the backend asks for more than it was configured for.
		rd.scratch = make([]float32, samples)
	}
	buf := rd.scratch[:samples]
	rd.r.RenderInterleaved(buf, rd.channels)
	return dsp.EncodeFloat32LE(p, buf), nil
}

// Callback returns a stream callback that renders straight into the
// backend's interleaved output buffer.
func Callback(r Renderer, channels int) func(out []float32) {
	return func(out []float32) {
		r.RenderInterleaved(out, channels)
	}
}
