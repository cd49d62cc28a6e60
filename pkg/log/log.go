// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Level is an alias of slog.Level, re-exported so callers outside this
// package don't need to import log/slog just to pick a level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// NewDefaultLogger creates a structured logger that writes human-readable
// output to stderr through zerolog's console writer. Any extra handlers
// (e.g. a JSON audit-trail handler for config mutations) are fanned out
// to alongside it, so a single log call reaches every configured sink.
func NewDefaultLogger(level Level, extra ...slog.Handler) *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		})).
		With().
		Timestamp().
		Logger()

	handlers := append([]slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zeroLogger}.NewZerologHandler(),
	}, extra...)

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// NewAuditHandler returns a JSON slog.Handler writing to w, intended to be
// passed to NewDefaultLogger as an audit trail of persisted-config
// mutations (profile/alias/zone/curve/cfm add-update-delete) alongside the
// human-readable console stream.
func NewAuditHandler(w *os.File, level Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

var globalLogger atomic.Pointer[slog.Logger]

func init() {
	globalLogger.Store(NewDefaultLogger(LevelInfo))
}

// SetGlobalLogger installs l as the logger returned by GetGlobalLogger.
func SetGlobalLogger(l *slog.Logger) {
	globalLogger.Store(l)
}

// GetGlobalLogger returns the process-wide logger, defaulting to an
// info-level console logger until SetGlobalLogger is called.
func GetGlobalLogger() *slog.Logger {
	return globalLogger.Load()
}
