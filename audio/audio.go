// Package audio is the engine's boundary to the platform output device.
// Linux plays through PulseAudio, everything else through miniaudio.
package audio

import (
	"context"
	"encoding/binary"
)

// Sink plays mono float32 sample buffers. Play blocks until the buffer has
// drained or ctx is cancelled; implementations must be safe for use from a
// single goroutine at a time (the controller serializes callers).
type Sink interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
	Close()
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

// Float32ToS16LE converts [-1, 1] samples to signed 16-bit little-endian PCM,
// clamping out-of-range values.
func Float32ToS16LE(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int32(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}

// Float32ToInt16 is the slice-of-int16 form used by the pulse backend.
func Float32ToInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := int32(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}
