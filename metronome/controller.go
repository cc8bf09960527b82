package metronome

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tick/accent"
	"tick/audio"
	"tick/log"
	"tick/synth"
)

const DefaultSampleRate = 44100

const (
	defaultBeepFrequency = 440.0
	beepAmplitude        = 0.8
	beepDuration         = 200 * time.Millisecond
)

// TickObserver is notified after each tick's audio has been handed to the
// sink. Front-ends use it to flash beat indicators; it must not block.
type TickObserver func(index int, accented bool)

// Controller owns the single playback session. At most one session runs at
// any time; starting a new one first cancels the old one and waits for its
// scheduler goroutine to exit, so no two sessions ever overlap on the sink.
type Controller struct {
	sink       audio.Sink
	sampleRate int
	observer   TickObserver

	// opMu serializes start/stop transitions, mu guards the slot itself.
	// The scheduler goroutine clears the slot under mu only, so a Stop
	// waiting on the goroutine under opMu cannot deadlock against it.
	opMu    sync.Mutex
	mu      sync.Mutex
	session *session

	// playMu makes the sink exclusive between session clicks and Beep.
	playMu sync.Mutex
}

type session struct {
	spec      BeatSpec
	config    accent.Config
	startedAt time.Time
	limit     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error // written before done is closed
}

// New returns a controller playing through sink. A sampleRate of 0 selects
// DefaultSampleRate.
func New(sink audio.Sink, sampleRate int) *Controller {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Controller{sink: sink, sampleRate: sampleRate}
}

// SetTickObserver installs fn for subsequent sessions.
func (c *Controller) SetTickObserver(fn TickObserver) {
	c.observer = fn
}

// Start validates spec and config, stops any running session, and launches a
// new one. A limit of 0 means indefinite playback.
func (c *Controller) Start(spec BeatSpec, config accent.Config, limit time.Duration) error {
	_, err := c.start(spec, config, limit)
	return err
}

func (c *Controller) start(spec BeatSpec, config accent.Config, limit time.Duration) (*session, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.stopCurrent()

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		spec:      spec,
		config:    config,
		startedAt: time.Now(),
		limit:     limit,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	log.Debugf("session start: bpm=%v beats=%d subdivision=%d limit=%v",
		spec.BPM, spec.BeatsPerMeasure, spec.Subdivision, limit)
	go c.run(s)
	return s, nil
}

// Stop cancels the running session and returns once its scheduler goroutine
// has exited. Calling it with no session running is a no-op.
func (c *Controller) Stop() {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.stopCurrent()
}

func (c *Controller) stopCurrent() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()
	if s == nil {
		return
	}
	s.cancel()
	<-s.done
}

// IsRunning reports whether a session is currently installed.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

func (c *Controller) run(s *session) {
	defer close(s.done)
	defer s.cancel()

	interval := s.spec.TickInterval()
	var expiry time.Time
	if s.limit > 0 {
		expiry = s.startedAt.Add(s.limit)
	}

	err := runSchedule(interval, func(i int) error {
		return c.playTick(s, i, interval)
	}, s.ctx.Done(), expiry)

	if err != nil {
		s.err = err
		log.Errorf("session aborted at tick: %v", err)
	} else {
		log.Debugf("session finished after %v", time.Since(s.startedAt))
	}

	// Clear the slot on expiry or error; a superseding start may already
	// have replaced it.
	c.mu.Lock()
	if c.session == s {
		c.session = nil
	}
	c.mu.Unlock()
}

func (c *Controller) playTick(s *session, index int, interval time.Duration) error {
	click := accent.Resolve(index, s.spec.BeatsPerMeasure, s.spec.Subdivision, s.config)

	// A click longer than the grid spacing would push the next deadline;
	// clamp it to the interval.
	duration := click.Duration
	if duration > interval {
		duration = interval
	}

	samples, err := synth.Synthesize(click.Wave, click.Frequency, click.Amplitude, duration, c.sampleRate)
	if err != nil {
		return fmt.Errorf("synthesize tick %d: %w", index, err)
	}

	c.playMu.Lock()
	err = c.sink.Play(s.ctx, samples, c.sampleRate)
	c.playMu.Unlock()
	if err != nil {
		if s.ctx.Err() != nil {
			return nil // cancelled mid-click, not a sink failure
		}
		return fmt.Errorf("audio sink at tick %d: %w", index, err)
	}

	if c.observer != nil {
		c.observer(index, click.Accent)
	}
	return nil
}

// Beep plays one short sine tone at the given frequency, blocking until it
// has drained. It shares the sink lock with session playback, so a beep and
// a metronome click never interleave on the device.
func (c *Controller) Beep(frequency float64) error {
	samples, err := synth.Synthesize(synth.Sine, frequency, beepAmplitude, beepDuration, c.sampleRate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	c.playMu.Lock()
	defer c.playMu.Unlock()
	return c.sink.Play(context.Background(), samples, c.sampleRate)
}

// BeepDefault plays the standard A4 beep.
func (c *Controller) BeepDefault() error {
	return c.Beep(defaultBeepFrequency)
}
