// Package logging provides structured logging for the tray and popup processes.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/claudeutils/usage-tray/internal/config"
)

// New creates the application logger. Output goes to stderr (console
// format) and to a size-rotated file under the log directory. The tray
// usually runs without an attached console, so the file is the writer
// that matters.
func New(name string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	writers := []io.Writer{console}
	if err := config.EnsureLogDirectory(); err == nil {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(config.LogDirectory(), name+".log"),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("proc", name).
		Logger()
}
