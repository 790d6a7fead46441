// Package sysutil holds process-level helpers shared by the CLI commands:
// zerolog setup and a GORM logger that writes through zerolog.
package sysutil

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetupLogging points the global logger at w with the given level. Pretty
// selects the human-readable console format used in development; otherwise
// one JSON object is written per line.
func SetupLogging(level string, pretty bool, w io.Writer) {
	SetLogLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// gormWriter forwards GORM's printf-style output to the global logger.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	log.Info().Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// GormLogger returns a GORM logger mapped from a zerolog level name. SQL
// statements are only traced at debug; slow queries (over 200ms) are reported
// from warn down. Record-not-found is never logged: it is a normal 404.
func GormLogger(level string) logger.Interface {
	var lvl logger.LogLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = logger.Info
	case "info", "warn", "warning", "":
		lvl = logger.Warn
	case "error":
		lvl = logger.Error
	default:
		lvl = logger.Silent
	}
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// FirstNonEmpty returns the first non-empty string from a variadic list.
// If all values are empty, it returns "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
