package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}

// debugLogger adapts zerolog to the srf.Logger interface
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
