package metronome

import (
	"fmt"
	"time"

	"tick/accent"
)

// StartSimple runs a uniform, unaccented metronome indefinitely.
func (c *Controller) StartSimple(bpm float64) error {
	return c.Start(BeatSpec{BPM: bpm, Subdivision: 1}, accent.Default(), 0)
}

// StartWithTimeSignature runs an accented metronome with the default accent
// configuration, indefinitely.
func (c *Controller) StartWithTimeSignature(bpm float64, beatsPerMeasure int) error {
	if beatsPerMeasure < 1 {
		return fmt.Errorf("%w: beats per measure %d below 1", ErrInvalidConfiguration, beatsPerMeasure)
	}
	return c.Start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: 1}, accent.Default(), 0)
}

// StartCustom runs a metronome with full control over the accent
// configuration. beatsPerMeasure 0 disables accents; a limit of 0 plays
// until stopped.
func (c *Controller) StartCustom(bpm float64, beatsPerMeasure int, config accent.Config, limit time.Duration) error {
	return c.Start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: 1}, config, limit)
}

// StartWithSubdivision runs a metronome ticking subdivision times per beat
// (2 = eighth notes, 3 = triplets, 4 = sixteenths).
func (c *Controller) StartWithSubdivision(bpm float64, beatsPerMeasure, subdivision int, limit time.Duration) error {
	return c.Start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: subdivision}, accent.Default(), limit)
}

// StartPractice uses the subtle accent preset.
func (c *Controller) StartPractice(bpm float64, beatsPerMeasure int) error {
	if beatsPerMeasure < 1 {
		return fmt.Errorf("%w: beats per measure %d below 1", ErrInvalidConfiguration, beatsPerMeasure)
	}
	return c.Start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: 1}, accent.Subtle(), 0)
}

// StartPerformance uses the strong accent preset.
func (c *Controller) StartPerformance(bpm float64, beatsPerMeasure int) error {
	if beatsPerMeasure < 1 {
		return fmt.Errorf("%w: beats per measure %d below 1", ErrInvalidConfiguration, beatsPerMeasure)
	}
	return c.Start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: 1}, accent.Strong(), 0)
}

// PlayForDuration runs an accented metronome and blocks until the duration
// elapses or the session is stopped early. The session is idle on return.
func (c *Controller) PlayForDuration(bpm float64, beatsPerMeasure int, d time.Duration) error {
	if beatsPerMeasure < 1 {
		return fmt.Errorf("%w: beats per measure %d below 1", ErrInvalidConfiguration, beatsPerMeasure)
	}
	return c.PlayCustomForDuration(bpm, beatsPerMeasure, accent.Default(), d)
}

// PlayCustomForDuration is the blocking variant with a custom accent
// configuration. beatsPerMeasure 0 disables accents. It is a thin wrapper
// over Start with a duration limit plus a wait on the session's completion
// signal; there is no separate timed scheduling path.
func (c *Controller) PlayCustomForDuration(bpm float64, beatsPerMeasure int, config accent.Config, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration %v not positive", ErrInvalidConfiguration, d)
	}
	s, err := c.start(BeatSpec{BPM: bpm, BeatsPerMeasure: beatsPerMeasure, Subdivision: 1}, config, d)
	if err != nil {
		return err
	}
	<-s.done
	return s.err
}
