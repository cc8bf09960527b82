// Package metronome schedules beats at a drift-corrected cadence and owns
// the single global playback session.
package metronome

import (
	"errors"
	"fmt"
	"time"

	"tick/synth"
)

// ErrInvalidConfiguration covers out-of-range tempo, time signature or
// subdivision values and unrecognized wave-type names. It is always returned
// before any session or goroutine is created.
var ErrInvalidConfiguration = errors.New("metronome: invalid configuration")

const (
	maxBPM             = 999
	maxBeatsPerMeasure = 32
)

// BeatSpec describes the beat grid of one session.
type BeatSpec struct {
	BPM float64

	// BeatsPerMeasure enables downbeat accents; 0 means uniform,
	// unaccented beats.
	BeatsPerMeasure int

	// Subdivision is the number of scheduler ticks per beat, at least 1
	// (2 = eighth notes, 4 = sixteenths).
	Subdivision int
}

func (s BeatSpec) Validate() error {
	if !(s.BPM > 0) || s.BPM > maxBPM {
		return fmt.Errorf("%w: bpm %v outside (0, %d]", ErrInvalidConfiguration, s.BPM, maxBPM)
	}
	if s.BeatsPerMeasure < 0 || s.BeatsPerMeasure > maxBeatsPerMeasure {
		return fmt.Errorf("%w: beats per measure %d outside [1, %d]",
			ErrInvalidConfiguration, s.BeatsPerMeasure, maxBeatsPerMeasure)
	}
	if s.Subdivision < 1 {
		return fmt.Errorf("%w: subdivision %d below 1", ErrInvalidConfiguration, s.Subdivision)
	}
	return nil
}

// TickInterval is the spacing of the scheduler grid: 60s / (BPM * Subdivision).
func (s BeatSpec) TickInterval() time.Duration {
	return time.Duration(float64(time.Minute) / (s.BPM * float64(s.Subdivision)))
}

// ParseWaveType resolves one of the four canonical wave-type names,
// reporting unknown names as a configuration error.
func ParseWaveType(name string) (synth.WaveType, error) {
	w, err := synth.ParseWaveType(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return w, nil
}
