//go:build js && wasm

package main

import (
	"syscall/js"
	"unicode/utf8"
	"unsafe"

	"github.com/cwbudde/algo-synth/synth"
)

const maxBlockFrames = 128

var (
	globalSynth  *synth.Synth
	outputBuffer []float32
)

func main() {
	// Keep program running
	c := make(chan struct{})

	// Export functions to JavaScript
	js.Global().Set("wasmInit", js.FuncOf(wasmInit))
	js.Global().Set("wasmNoteOn", js.FuncOf(wasmNoteOn))
	js.Global().Set("wasmNoteOff", js.FuncOf(wasmNoteOff))
	js.Global().Set("wasmSetEnvelope", js.FuncOf(wasmSetEnvelope))
	js.Global().Set("wasmProcessBlock", js.FuncOf(wasmProcessBlock))
	js.Global().Set("wasmGetMemoryBuffer", js.FuncOf(wasmGetMemoryBuffer))

	println("WASM synth module loaded")
	<-c
}

func wasmInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	sampleRate := args[0].Int()

	s, err := synth.New(sampleRate, 2, synth.NewDefaultParams())
	if err != nil {
		println("Synth init failed:", err.Error())
		return nil
	}
	globalSynth = s

	// Pre-allocate output buffer for 128 stereo frames
	outputBuffer = make([]float32, maxBlockFrames*2)

	println("Synth initialized at", sampleRate, "Hz")
	return nil
}

// keyArg takes the first character of a JS string argument.
func keyArg(v js.Value) (rune, bool) {
	if v.Type() != js.TypeString {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(v.String())
	return r, r != utf8.RuneError
}

func wasmNoteOn(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return false
	}
	key, ok := keyArg(args[0])
	if !ok {
		return false
	}
	return globalSynth.NoteOn(key)
}

func wasmNoteOff(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return nil
	}
	if key, ok := keyArg(args[0]); ok {
		globalSynth.NoteOff(key)
	}
	return nil
}

func wasmSetEnvelope(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 || globalSynth == nil {
		return nil
	}
	env := synth.Envelope{
		Attack:  args[0].Float(),
		Peak:    args[1].Float(),
		Decay:   args[2].Float(),
		Sustain: args[3].Float(),
		Release: args[4].Float(),
	}
	if err := globalSynth.SetEnvelope(env); err != nil {
		return err.Error()
	}
	return nil
}

func wasmProcessBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return 0
	}

	numFrames := args[0].Int()
	if numFrames > maxBlockFrames {
		numFrames = maxBlockFrames
	}
	if numFrames < 0 {
		numFrames = 0
	}

	globalSynth.RenderInterleaved(outputBuffer[:numFrames*2], 2)

	// Return pointer to buffer in WASM linear memory
	ptr := &outputBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func wasmGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	// Return WASM memory buffer for access from JS
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}
