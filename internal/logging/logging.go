// Package logging builds the structured loggers shared by the stores, the
// deck loader and the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// FieldKey is the field name for a durable store key.
	FieldKey = "key"
	// FieldBelt is the field name for the belt (deck) identity.
	FieldBelt = "belt"
	// FieldCategory is the field name for the study category.
	FieldCategory = "category"
	// FieldCard is the field name for a card front.
	FieldCard = "card"
	// FieldRunID is the field name for a drill run id.
	FieldRunID = "run_id"
	// FieldDuration is the field name for duration in milliseconds.
	FieldDuration = "duration_ms"
	// FieldCount is the field name for item counts.
	FieldCount = "count"
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
