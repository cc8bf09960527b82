//go:build linux

package audio

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
)

type pulseSink struct {
	client *pulse.Client
	sink   *pulse.Sink
}

// NewSink opens a PulseAudio playback client. A nil device selects the
// default sink.
func NewSink(device *DeviceInfo) (Sink, error) {
	c, err := pulse.NewClient()
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	s := &pulseSink{client: c}
	if device != nil {
		sink, err := c.SinkByID(device.ID)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("pulse sink %q: %w", device.ID, err)
		}
		s.sink = sink
	}
	return s, nil
}

func (p *pulseSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if len(samples) == 0 {
		return nil
	}

	pcm := Float32ToInt16(samples)
	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(pcm) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, pcm[pos:])
		pos += n
		return n, nil
	})

	opts := []pulse.PlaybackOption{
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.05),
	}
	if p.sink != nil {
		opts = append(opts, pulse.PlaybackSink(p.sink))
	}

	stream, err := p.client.NewPlayback(reader, opts...)
	if err != nil {
		return fmt.Errorf("pulse playback: %w", err)
	}

	done := make(chan struct{})
	go func() {
		stream.Start()
		stream.Drain()
		close(done)
	}()

	select {
	case <-ctx.Done():
		stream.Stop()
		stream.Close()
		return ctx.Err()
	case <-done:
		stream.Stop()
		stream.Close()
		return nil
	}
}

func (p *pulseSink) Close() {
	p.client.Close()
}

// ListDevices enumerates PulseAudio sinks.
func ListDevices() ([]DeviceInfo, error) {
	c, err := pulse.NewClient()
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	defer c.Close()

	sinks, err := c.ListSinks()
	if err != nil {
		return nil, fmt.Errorf("pulse list sinks: %w", err)
	}
	var devices []DeviceInfo
	for _, s := range sinks {
		devices = append(devices, DeviceInfo{
			ID:   s.ID(),
			Name: s.Name(),
		})
	}
	return devices, nil
}
