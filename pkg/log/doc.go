// SPDX-License-Identifier: BSD-3-Clause

// Package log provides the daemon's structured logger: a zerolog console
// writer exposed through the standard library's log/slog interface, plus
// small adapters so third-party components that want a different logger
// shape (the standard log.Logger, an oversight.Logger for supervision
// tree diagnostics) get one backed by the same sink.
//
// Typical use:
//
//	logger := log.NewDefaultLogger(log.LevelDebug)
//	log.SetGlobalLogger(logger)
//	logger.Info("controller registered", "id", "main", "fan_count", 10)
package log
