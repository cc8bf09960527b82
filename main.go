package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"tick/accent"
	"tick/audio"
	"tick/log"
	"tick/metronome"
	"tick/shutdown"
)

var version = "dev"

func main() {
	bpm := flag.Float64("bpm", 0, "tempo in beats per minute")
	beats := flag.Int("beats", 0, "beats per measure (0 = no accents)")
	subdivision := flag.Int("subdivision", 0, "scheduler ticks per beat (2 = eighth notes)")
	wave := flag.String("wave", "", "wave type: Sine, Square, Triangle or Sawtooth")
	preset := flag.String("preset", "", "accent preset: default, subtle or strong")
	durationSec := flag.Int("duration", 0, "stop automatically after this many seconds (0 = run until interrupted)")
	doBeep := flag.Bool("beep", false, "play a single beep and exit")
	beepFreq := flag.Float64("freq", 440, "beep frequency in Hz")
	listDevices := flag.Bool("list-devices", false, "list output devices and exit")
	pickDevice := flag.Bool("pick-device", false, "interactively select the output device")
	useTUI := flag.Bool("tui", false, "show the terminal beat display")
	configPath := flag.String("config", "", "path to config.toml")
	logPath := flag.String("logpath", "", "directory for the diagnostics log")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tick %s\n", version)
		return
	}

	logDir, err := log.ResolveDir(*logPath)
	if err == nil {
		log.SetDir(logDir)
		if err := log.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: diagnostics log unavailable: %v\n", err)
		}
	}
	defer log.Close()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	// Flags explicitly given on the command line override config values.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["bpm"] {
		cfg.BPM = *bpm
	}
	if set["beats"] {
		cfg.Beats = *beats
	}
	if set["subdivision"] {
		cfg.Subdivision = *subdivision
	}
	if set["wave"] {
		cfg.Wave = *wave
	}
	if set["preset"] {
		cfg.Preset = *preset
	}
	if cfg.Subdivision < 1 {
		cfg.Subdivision = 1
	}

	if *listDevices {
		devices, err := audio.ListDevices()
		if err != nil {
			fatal(err)
		}
		for _, d := range devices {
			fmt.Println(d.Name)
		}
		return
	}

	var device *audio.DeviceInfo
	if *pickDevice {
		device, err = selectDevice()
	} else {
		device, err = findDevice(cfg.Device)
	}
	if err != nil {
		fatal(err)
	}

	sink, err := audio.NewSink(device)
	if err != nil {
		fatal(fmt.Errorf("opening audio output: %w", err))
	}
	defer sink.Close()

	ctrl := metronome.New(sink, cfg.SampleRate)

	if *doBeep {
		if err := ctrl.Beep(*beepFreq); err != nil {
			fatal(err)
		}
		return
	}

	accentCfg, err := buildAccentConfig(cfg)
	if err != nil {
		fatal(err)
	}
	spec := metronome.BeatSpec{
		BPM:             cfg.BPM,
		BeatsPerMeasure: cfg.Beats,
		Subdivision:     cfg.Subdivision,
	}
	limit := time.Duration(*durationSec) * time.Second

	if *useTUI {
		if err := runTUI(ctrl, spec, accentCfg, limit); err != nil {
			fatal(err)
		}
		return
	}

	if limit > 0 {
		if err := ctrl.PlayCustomForDuration(spec.BPM, spec.BeatsPerMeasure, accentCfg, limit); err != nil {
			fatal(err)
		}
		return
	}

	if err := ctrl.Start(spec, accentCfg, 0); err != nil {
		fatal(err)
	}
	fmt.Printf("tick %s: %.0f bpm", version, spec.BPM)
	if spec.BeatsPerMeasure > 0 {
		fmt.Printf(", %d/4", spec.BeatsPerMeasure)
	}
	if spec.Subdivision > 1 {
		fmt.Printf(", %d ticks per beat", spec.Subdivision)
	}
	fmt.Println(" (Ctrl+C to stop)")

	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	<-sig
	ctrl.Stop()
}

func buildAccentConfig(cfg fileConfig) (accent.Config, error) {
	var ac accent.Config
	switch strings.ToLower(cfg.Preset) {
	case "", "default":
		ac = accent.Default()
	case "subtle":
		ac = accent.Subtle()
	case "strong":
		ac = accent.Strong()
	default:
		return accent.Config{}, fmt.Errorf("%w: unknown preset %q", metronome.ErrInvalidConfiguration, cfg.Preset)
	}
	if cfg.Wave != "" {
		w, err := metronome.ParseWaveType(cfg.Wave)
		if err != nil {
			return accent.Config{}, err
		}
		ac.Wave = w
	}
	return ac, nil
}

func fatal(err error) {
	log.Errorf("%v", err)
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
