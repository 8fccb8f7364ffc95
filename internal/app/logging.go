package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var levelMapping = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warning": zerolog.WarnLevel,
	"warn":    zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// SetupLog configures the global logger. An empty path logs to stderr
// in human-readable form, otherwise JSON lines are appended to the file.
func SetupLog(path, level string) error {
	lev, ok := levelMapping[level]
	if !ok {
		return fmt.Errorf("invalid logging level: %s", level)
	}
	zerolog.SetGlobalLevel(lev)
	if path != "" {
		logf, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to initialize log file %s: %w", path, err)
		}
		log.Logger = log.Output(logf)
		return nil
	}
	log.Logger = log.Output(
		zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		},
	)
	return nil
}
