package audio

import (
	"context"
	"sync"
	"time"
)

// Playback is one recorded Play call.
type Playback struct {
	Samples    []float32
	SampleRate int
	At         time.Time
}

// FakeSink records every Play call in memory. Engine tests use it instead of
// a real output device. With realtime set, Play also paces itself to the
// buffer's wall-clock length the way a real device would.
type FakeSink struct {
	realtime bool

	mu     sync.Mutex
	plays  []Playback
	err    error
	closed bool
}

func NewFakeSink(realtime bool) *FakeSink {
	return &FakeSink{realtime: realtime}
}

// Fail makes every subsequent Play return err.
func (f *FakeSink) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *FakeSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	f.mu.Lock()
	if f.err != nil {
		err := f.err
		f.mu.Unlock()
		return err
	}
	buf := make([]float32, len(samples))
	copy(buf, samples)
	f.plays = append(f.plays, Playback{Samples: buf, SampleRate: sampleRate, At: time.Now()})
	f.mu.Unlock()

	if f.realtime && sampleRate > 0 {
		d := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return nil
}

// Plays returns a copy of the recorded playbacks.
func (f *FakeSink) Plays() []Playback {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Playback, len(f.plays))
	copy(out, f.plays)
	return out
}

func (f *FakeSink) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.plays)
}

func (f *FakeSink) Reset() {
	f.mu.Lock()
	f.plays = nil
	f.mu.Unlock()
}

func (f *FakeSink) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}
