// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and the optional rotated log file.
type Options struct {
	Level string
	// File receives JSON logs next to the console output when set.
	File string
	// Console is where human-readable logs go; stderr when nil.
	Console io.Writer
}

// Configure installs the global logger and returns it.
func Configure(opts Options) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.Kitchen,
		},
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), os.ModePerm); err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(level)

	return log.Logger, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
