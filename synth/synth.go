// Package synth renders short click/tone buffers for the metronome engine.
// All functions are pure: the same inputs always produce the same samples.
package synth

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidParameter = errors.New("synth: invalid parameter")
	ErrUnknownWaveType  = errors.New("synth: unknown wave type")
)

type WaveType int

const (
	Sine WaveType = iota
	Square
	Triangle
	Sawtooth
)

var waveNames = map[WaveType]string{
	Sine:     "Sine",
	Square:   "Square",
	Triangle: "Triangle",
	Sawtooth: "Sawtooth",
}

func (w WaveType) String() string {
	if name, ok := waveNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WaveType(%d)", int(w))
}

// ParseWaveType maps one of the four canonical names to its WaveType.
// Matching is exact and case-sensitive: "sine" is not a wave type.
func ParseWaveType(name string) (WaveType, error) {
	for w, n := range waveNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWaveType, name)
}

// fadeDuration is the linear fade applied to both buffer edges. Without it
// the waveform starts and ends on a discontinuity and the click is audible
// as a pop on most hardware.
const fadeDuration = 5 * time.Millisecond

// Synthesize renders one tone as mono float32 samples in [-amplitude, amplitude].
//
// frequency must be positive and finite, amplitude in (0, 1], duration and
// sampleRate positive. Violations return ErrInvalidParameter.
func Synthesize(wave WaveType, frequency, amplitude float64, duration time.Duration, sampleRate int) ([]float32, error) {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("%w: frequency %v", ErrInvalidParameter, frequency)
	}
	if !(amplitude > 0 && amplitude <= 1) {
		return nil, fmt.Errorf("%w: amplitude %v", ErrInvalidParameter, amplitude)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidParameter, duration)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}

	n := int(duration.Seconds() * float64(sampleRate))
	if n < 1 {
		n = 1
	}
	samples := make([]float32, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		phase := frequency * t
		var v float64
		switch wave {
		case Sine:
			v = math.Sin(2 * math.Pi * phase)
		case Square:
			if math.Sin(2*math.Pi*phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		case Triangle:
			v = (2 / math.Pi) * math.Asin(math.Sin(2*math.Pi*phase))
		case Sawtooth:
			v = 2 * (phase - math.Floor(phase+0.5))
		default:
			return nil, fmt.Errorf("%w: wave %d", ErrInvalidParameter, int(wave))
		}
		samples[i] = float32(amplitude * v)
	}
	applyEdgeFade(samples, sampleRate)
	return samples, nil
}

func applyEdgeFade(samples []float32, sampleRate int) {
	fade := int(fadeDuration.Seconds() * float64(sampleRate))
	if fade*2 > len(samples) {
		fade = len(samples) / 2
	}
	for i := 0; i < fade; i++ {
		gain := float32(i) / float32(fade)
		samples[i] *= gain
		samples[len(samples)-1-i] *= gain
	}
}
