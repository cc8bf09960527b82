//go:build !linux

package audio

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

type malgoSink struct {
	ctx      *malgo.AllocatedContext
	deviceID *malgo.DeviceID

	mu     sync.Mutex
	closed bool
}

// NewSink opens a miniaudio playback context. A nil device selects the
// default output device.
func NewSink(device *DeviceInfo) (Sink, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo init: %w", err)
	}
	s := &malgoSink{ctx: ctx}
	if device != nil {
		idBytes, err := hex.DecodeString(device.ID)
		if err != nil {
			ctx.Uninit()
			ctx.Free()
			return nil, fmt.Errorf("invalid device ID: %w", err)
		}
		var devID malgo.DeviceID
		copy(devID[:], idBytes)
		s.deviceID = &devID
	}
	return s, nil
}

func (s *malgoSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if len(samples) == 0 {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("sink closed")
	}
	s.mu.Unlock()

	pcm := Float32ToS16LE(samples)
	pos := 0
	done := make(chan struct{})

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = 512
	deviceConfig.Periods = 2
	if s.deviceID != nil {
		deviceConfig.Playback.DeviceID = s.deviceID.Pointer()
	}

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			need := int(frameCount) * 2 // 16-bit mono
			if pos >= len(pcm) {
				for i := range out[:need] {
					out[i] = 0
				}
				select {
				case done <- struct{}{}:
				default:
				}
				return
			}
			end := pos + need
			if end > len(pcm) {
				end = len(pcm)
			}
			copy(out, pcm[pos:end])
			for i := end - pos; i < need; i++ {
				out[i] = 0
			}
			pos = end
		},
	}

	device, err := malgo.InitDevice(s.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("malgo device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("malgo start: %w", err)
	}
	defer device.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (s *malgoSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.ctx.Uninit()
	s.ctx.Free()
}

// ListDevices enumerates miniaudio playback devices.
func ListDevices() ([]DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo init: %w", err)
	}
	defer func() {
		ctx.Uninit()
		ctx.Free()
	}()

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("malgo devices: %w", err)
	}
	var result []DeviceInfo
	for _, d := range devices {
		result = append(result, DeviceInfo{
			ID:   hex.EncodeToString(d.ID.Pointer()[:]),
			Name: d.Name(),
		})
	}
	return result, nil
}
