package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig holds optional defaults loaded from a TOML file; flags given on
// the command line always win.
type fileConfig struct {
	BPM         float64 `toml:"bpm"`
	Beats       int     `toml:"beats"`
	Subdivision int     `toml:"subdivision"`
	Wave        string  `toml:"wave"`
	Preset      string  `toml:"preset"`
	SampleRate  int     `toml:"sample_rate"`
	Device      string  `toml:"device"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		BPM:         120,
		Subdivision: 1,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tick", "config.toml")
}

// loadConfig reads path, or the default location when path is empty. A
// missing file at the default location is not an error.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
