package synth

import (
	"errors"
	"math"
	"testing"
	"time"
)

const testRate = 44100

func mustSynth(t *testing.T, wave WaveType, freq, amp float64, d time.Duration) []float32 {
	t.Helper()
	samples, err := Synthesize(wave, freq, amp, d, testRate)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	return samples
}

// goertzelPower measures the spectral power of one frequency bin.
func goertzelPower(samples []float32, freq float64, sampleRate int) float64 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	coeff := 2 * math.Cos(w)
	var s1, s2 float64
	for _, x := range samples {
		s0 := float64(x) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	return s1*s1 + s2*s2 - coeff*s1*s2
}

func TestSineDominantFrequency(t *testing.T) {
	samples := mustSynth(t, Sine, 440, 1.0, 100*time.Millisecond)

	best, bestPower := 0.0, 0.0
	for f := 300.0; f <= 600.0; f++ {
		if p := goertzelPower(samples, f, testRate); p > bestPower {
			best, bestPower = f, p
		}
	}
	if math.Abs(best-440) > 1 {
		t.Fatalf("dominant frequency %v Hz, want 440 ±1", best)
	}
}

func TestAmplitudeBound(t *testing.T) {
	for _, wave := range []WaveType{Sine, Square, Triangle, Sawtooth} {
		samples := mustSynth(t, wave, 440, 0.5, 50*time.Millisecond)
		var peak float64
		for _, s := range samples {
			if v := math.Abs(float64(s)); v > peak {
				peak = v
			}
		}
		if peak > 0.5+1e-6 {
			t.Errorf("%v: peak %v exceeds amplitude 0.5", wave, peak)
		}
		if peak < 0.4 {
			t.Errorf("%v: peak %v suspiciously low for amplitude 0.5", wave, peak)
		}
	}
}

func TestSquareHoldsFullAmplitude(t *testing.T) {
	samples := mustSynth(t, Square, 440, 1.0, 50*time.Millisecond)
	fade := testRate * 5 / 1000
	for i := fade; i < len(samples)-fade; i++ {
		if v := math.Abs(float64(samples[i])); math.Abs(v-1.0) > 1e-6 {
			t.Fatalf("sample %d: |%v| != 1.0", i, samples[i])
		}
	}
}

func TestEdgeFade(t *testing.T) {
	samples := mustSynth(t, Square, 440, 1.0, 100*time.Millisecond)
	if samples[0] != 0 {
		t.Errorf("first sample %v, want 0 (fade-in)", samples[0])
	}
	if last := samples[len(samples)-1]; math.Abs(float64(last)) > 0.01 {
		t.Errorf("last sample %v, want ~0 (fade-out)", last)
	}
	// Fade ramps up monotonically on a square wave's flat top.
	fade := testRate * 5 / 1000
	quarter := math.Abs(float64(samples[fade/4]))
	half := math.Abs(float64(samples[fade/2]))
	if quarter >= half {
		t.Errorf("fade not ramping: |s[%d]|=%v >= |s[%d]|=%v", fade/4, quarter, fade/2, half)
	}
}

func TestDeterministic(t *testing.T) {
	a := mustSynth(t, Sawtooth, 523.25, 0.7, 80*time.Millisecond)
	b := mustSynth(t, Sawtooth, 523.25, 0.7, 80*time.Millisecond)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		freq float64
		amp  float64
		dur  time.Duration
		rate int
	}{
		{"zero frequency", 0, 1, time.Second, testRate},
		{"negative frequency", -440, 1, time.Second, testRate},
		{"nan frequency", math.NaN(), 1, time.Second, testRate},
		{"inf frequency", math.Inf(1), 1, time.Second, testRate},
		{"zero amplitude", 440, 0, time.Second, testRate},
		{"amplitude above one", 440, 1.5, time.Second, testRate},
		{"zero duration", 440, 1, 0, testRate},
		{"negative duration", 440, 1, -time.Second, testRate},
		{"zero sample rate", 440, 1, time.Second, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Synthesize(Sine, tc.freq, tc.amp, tc.dur, tc.rate)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestParseWaveType(t *testing.T) {
	for name, want := range map[string]WaveType{
		"Sine":     Sine,
		"Square":   Square,
		"Triangle": Triangle,
		"Sawtooth": Sawtooth,
	} {
		got, err := ParseWaveType(name)
		if err != nil || got != want {
			t.Errorf("ParseWaveType(%q) = %v, %v; want %v", name, got, err, want)
		}
	}

	for _, name := range []string{"hex", "sine", "SQUARE", "", "Sine "} {
		if _, err := ParseWaveType(name); !errors.Is(err, ErrUnknownWaveType) {
			t.Errorf("ParseWaveType(%q): got %v, want ErrUnknownWaveType", name, err)
		}
	}
}
