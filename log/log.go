// Package log writes the engine's diagnostics log. Before Init the helpers
// fall back to stderr so early failures are still visible.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	dir      string
)

// ResolveDir picks the log directory: -logpath flag, then TICK_LOG_PATH,
// then the OS cache directory.
func ResolveDir(flagPath string) (string, error) {
	if flagPath != "" {
		return absolute(flagPath)
	}
	if envPath := os.Getenv("TICK_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "tick"), nil
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	f, err := os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", os.Getpid()).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Debugf(format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady {
		return
	}
	diagLog.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	diagLog.Info().Msgf(format, args...)
}

func Errorf(format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	diagLog.Error().Msgf(format, args...)
}
