package audio

import (
	"context"
	"testing"
)

func TestFloat32ToS16LE(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1.0, -1.0, 1.5, -1.5}
	out := Float32ToS16LE(in)
	if len(out) != len(in)*2 {
		t.Fatalf("length %d, want %d", len(out), len(in)*2)
	}

	decode := func(i int) int16 {
		return int16(uint16(out[i*2]) | uint16(out[i*2+1])<<8)
	}
	if v := decode(0); v != 0 {
		t.Errorf("0.0 -> %d, want 0", v)
	}
	if v := decode(1); v != 16383 {
		t.Errorf("0.5 -> %d, want 16383", v)
	}
	if v := decode(3); v != 32767 {
		t.Errorf("1.0 -> %d, want 32767", v)
	}
	// Out-of-range input clamps instead of wrapping.
	if v := decode(5); v != 32767 {
		t.Errorf("1.5 -> %d, want clamped 32767", v)
	}
	if v := decode(6); v != -32768 {
		t.Errorf("-1.5 -> %d, want clamped -32768", v)
	}
}

func TestFakeSinkRecords(t *testing.T) {
	sink := NewFakeSink(false)
	defer sink.Close()

	buf := []float32{0.1, 0.2, 0.3}
	if err := sink.Play(context.Background(), buf, 44100); err != nil {
		t.Fatalf("Play: %v", err)
	}
	buf[0] = 9 // the sink must have copied the buffer

	plays := sink.Plays()
	if len(plays) != 1 {
		t.Fatalf("%d plays recorded, want 1", len(plays))
	}
	if plays[0].Samples[0] != 0.1 {
		t.Error("recorded buffer aliases the caller's slice")
	}
	if plays[0].SampleRate != 44100 {
		t.Errorf("sample rate %d, want 44100", plays[0].SampleRate)
	}
}
