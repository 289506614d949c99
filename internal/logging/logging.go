// Package logging builds the application's zerolog logger from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/crewgrid/internal/config"
	"github.com/javiermolinar/crewgrid/internal/layout"
)

const consoleTimeFormat = "15:04:05"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to w in the configured format, plus an
// optional file sink. The returned Closer releases the file.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, io.Closer, error) {
	zerolog.ErrorFieldName = "err"

	var out io.Writer = w
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	}

	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file %q: %w", path, err)
		}
		closer = f
		out = zerolog.MultiLevelWriter(out, zerolog.SyncWriter(f))
	}

	l := zerolog.New(out).Level(ParseLevel(cfg.Level, zerolog.InfoLevel)).With().Timestamp().Logger()
	return l, closer, nil
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return def
	}
}

// Warnings logs layout fallbacks at warn level.
func Warnings(l zerolog.Logger, ws []layout.Warning) {
	for _, w := range ws {
		l.Warn().Err(w.Err).Str("task_id", w.TaskID).Msg("task rendered as untimed")
	}
}

// DuplicateAssignees warns about roster names that match more than one group.
func DuplicateAssignees(l zerolog.Logger, names []string) {
	for _, n := range names {
		l.Warn().Str("assignee", n).Msg("assignee name shared by several team members")
	}
}
