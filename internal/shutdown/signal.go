package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns a copy of parent that is canceled the moment
// SIGINT or SIGTERM arrives, the modern stdlib equivalent of a manually
// wired signal channel plus cancel goroutine.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
