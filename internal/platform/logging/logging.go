package logging

import (
	"io"
	"log/slog"
	"strings"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// New builds a key=value text logger for the given level name.
// Unknown level names fall back to INFO.
func New(w io.Writer, level, service string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		lvl.Set(slog.LevelDebug)
	case LevelWarn:
		lvl.Set(slog.LevelWarn)
	case LevelError:
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With(slog.String("service", service))
}
