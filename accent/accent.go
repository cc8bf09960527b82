// Package accent decides how each metronome tick should sound: which ticks
// are accented downbeats, which are plain beats and which are subdivision
// clicks between beats.
package accent

import (
	"fmt"
	"time"

	"tick/synth"
)

const (
	// Default click pitches follow the common metronome convention of an
	// octave jump on the downbeat: A5 accent over A4 regular beats, with
	// subdivision clicks at C5.
	defaultAccentFrequency = 880.0
	defaultNormalFrequency = 440.0
	defaultSubFrequency    = 523.25

	defaultAccentAmplitude = 1.0
	defaultNormalAmplitude = 0.8

	defaultAccentDuration = 150 * time.Millisecond
	defaultNormalDuration = 100 * time.Millisecond
	defaultSubDuration    = 80 * time.Millisecond

	defaultSubVolume = 0.7
)

// Config describes the sound of accent, normal and subdivision ticks.
// Zero values are not usable; construct through one of the presets and
// adjust fields as needed.
type Config struct {
	Wave synth.WaveType

	AccentFrequency float64 // Hz
	NormalFrequency float64 // Hz

	AccentAmplitude float64 // (0, 1]
	NormalAmplitude float64 // (0, 1]

	AccentDuration time.Duration
	NormalDuration time.Duration

	// Subdivision ticks get their own pitch and length, and their amplitude
	// is NormalAmplitude scaled by SubdivisionVolume so they sit under the
	// main beats.
	SubdivisionFrequency float64
	SubdivisionDuration  time.Duration
	SubdivisionVolume    float64 // (0, 1]
}

// Default returns the standard configuration: sine clicks, octave accent.
func Default() Config {
	return Config{
		Wave:                 synth.Sine,
		AccentFrequency:      defaultAccentFrequency,
		NormalFrequency:      defaultNormalFrequency,
		AccentAmplitude:      defaultAccentAmplitude,
		NormalAmplitude:      defaultNormalAmplitude,
		AccentDuration:       defaultAccentDuration,
		NormalDuration:       defaultNormalDuration,
		SubdivisionFrequency: defaultSubFrequency,
		SubdivisionDuration:  defaultSubDuration,
		SubdivisionVolume:    defaultSubVolume,
	}
}

// Subtle returns a gentler accent, a fifth above the regular beat instead of
// an octave. Suited to long practice sessions.
func Subtle() Config {
	c := Default()
	c.AccentFrequency = 660.0
	c.AccentAmplitude = 0.9
	c.AccentDuration = 120 * time.Millisecond
	return c
}

// Strong returns a very pronounced accent, two octaves up with shortened
// regular beats. Suited to performance settings.
func Strong() Config {
	c := Default()
	c.AccentFrequency = 1760.0
	c.NormalAmplitude = 0.7
	c.AccentDuration = 200 * time.Millisecond
	c.NormalDuration = 80 * time.Millisecond
	return c
}

// WithWaveType returns the default configuration voiced with the given wave.
func WithWaveType(w synth.WaveType) Config {
	c := Default()
	c.Wave = w
	return c
}

func (c Config) Validate() error {
	if !(c.AccentFrequency > 0) || !(c.NormalFrequency > 0) || !(c.SubdivisionFrequency > 0) {
		return fmt.Errorf("frequencies must be positive (accent %v, normal %v, subdivision %v)",
			c.AccentFrequency, c.NormalFrequency, c.SubdivisionFrequency)
	}
	if !(c.AccentAmplitude > 0 && c.AccentAmplitude <= 1) {
		return fmt.Errorf("accent amplitude %v outside (0, 1]", c.AccentAmplitude)
	}
	if !(c.NormalAmplitude > 0 && c.NormalAmplitude <= 1) {
		return fmt.Errorf("normal amplitude %v outside (0, 1]", c.NormalAmplitude)
	}
	if !(c.SubdivisionVolume > 0 && c.SubdivisionVolume <= 1) {
		return fmt.Errorf("subdivision volume %v outside (0, 1]", c.SubdivisionVolume)
	}
	if c.AccentDuration <= 0 || c.NormalDuration <= 0 || c.SubdivisionDuration <= 0 {
		return fmt.Errorf("durations must be positive")
	}
	return nil
}

// Click is the resolved sound for one scheduler tick.
type Click struct {
	Frequency float64
	Amplitude float64
	Wave      synth.WaveType
	Duration  time.Duration
	Accent    bool
}

// Resolve maps a scheduler tick index to click parameters.
//
// With subdivision s, tick i belongs to logical beat i/s; only the tick at
// subdivision offset 0 can be a main beat, and it is accented when
// beatsPerMeasure > 0 and the logical beat falls on a measure boundary.
// All other ticks are subdivision clicks and are never accented, even when
// they straddle a measure boundary index.
func Resolve(tickIndex, beatsPerMeasure, subdivision int, c Config) Click {
	if subdivision < 1 {
		subdivision = 1
	}
	if tickIndex%subdivision != 0 {
		return Click{
			Frequency: c.SubdivisionFrequency,
			Amplitude: c.NormalAmplitude * c.SubdivisionVolume,
			Wave:      c.Wave,
			Duration:  c.SubdivisionDuration,
		}
	}
	logicalBeat := tickIndex / subdivision
	if beatsPerMeasure > 0 && logicalBeat%beatsPerMeasure == 0 {
		return Click{
			Frequency: c.AccentFrequency,
			Amplitude: c.AccentAmplitude,
			Wave:      c.Wave,
			Duration:  c.AccentDuration,
			Accent:    true,
		}
	}
	return Click{
		Frequency: c.NormalFrequency,
		Amplitude: c.NormalAmplitude,
		Wave:      c.Wave,
		Duration:  c.NormalDuration,
	}
}
