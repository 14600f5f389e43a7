// Package logging configures the global zerolog logger
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"enrolladmin/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 14
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the global logger described by cfg. The returned closer
// flushes the rotating file, if any.
func Setup(cfg config.LogCfg) (io.Closer, error) {
	return SetupTo(cfg, os.Stdout)
}

// SetupTo is Setup with an explicit stdout writer
func SetupTo(cfg config.LogCfg, stdout io.Writer) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	if cfg.Output != "file" {
		writers = append(writers, consoleOrJSON(cfg.Format, stdout))
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		fw, err := fileWriter(cfg.File)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fw)
		closer = fw
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	log.Debug().
		Str("level", level.String()).
		Str("format", cfg.Format).
		Str("output", cfg.Output).
		Msg("logger initialized")
	return closer, nil
}

func consoleOrJSON(format string, w io.Writer) io.Writer {
	if format == "console" {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return w
}

func fileWriter(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}, nil
}

// Component returns the global logger tagged with a component name
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
