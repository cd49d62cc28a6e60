// SPDX-License-Identifier: BSD-3-Clause

package connmgr

import (
	"context"
	"time"

	"cirello.io/oversight/v2"
	"github.com/openfan/openfand/internal/fancontroller"
)

// HeartbeatChildProcess builds an oversight.ChildProcess that, while
// the manager's reconnect configuration has heartbeats enabled,
// probes the connection with GetFwInfo every HeartbeatInterval while
// Connected. A successful probe is silent; a disconnect-class failure
// is handled inside WithController, which drives the transition to
// Disconnected. Intended to be supervised one-per-manager, Transient,
// alongside the daemon's other background work.
func (m *Manager) HeartbeatChildProcess() oversight.ChildProcess {
	return func(ctx context.Context) error {
		if !m.cfg.EnableHeartbeat {
			<-ctx.Done()
			return ctx.Err()
		}

		ticker := time.NewTicker(m.cfg.HeartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if m.currentState() != StateConnected {
					continue
				}
				_, err := WithController(m, func(f *fancontroller.Facade) (struct{}, error) {
					_, err := f.GetFwInfo()
					return struct{}{}, err
				})
				if err != nil {
					m.logger.Debug("connmgr: heartbeat probe failed", "device", m.devicePath, "error", err)
				}
			}
		}
	}
}
