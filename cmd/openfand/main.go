// SPDX-License-Identifier: BSD-3-Clause

// Command openfand is the OpenFAN daemon: it loads static and persisted
// configuration, opens (or mocks) each configured controller, serves the
// JSON control surface over HTTP, and applies a safe-boot profile on
// shutdown. See internal/config, internal/registry and internal/httpapi
// for the pieces it wires together.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cirello.io/oversight/v2"
	"github.com/openfan/openfand/internal/api"
	"github.com/openfan/openfand/internal/board"
	"github.com/openfan/openfand/internal/config"
	"github.com/openfan/openfand/internal/connmgr"
	"github.com/openfan/openfand/internal/fancontroller"
	"github.com/openfan/openfand/internal/httpapi"
	"github.com/openfan/openfand/internal/registry"
	"github.com/openfan/openfand/internal/serialport"
	"github.com/openfan/openfand/internal/shutdown"
	"github.com/openfan/openfand/internal/wire"
	"github.com/openfan/openfand/pkg/log"
)

const configPathEnvVar = "OPENFAN_CONFIG"

func main() {
	os.Exit(run())
}

// run contains everything main would otherwise do directly, so defers
// (closing the HTTP server, cancelling the supervision tree) actually
// fire before the process exits with the chosen code.
func run() int {
	var (
		configPath          = flag.String("config", "", "path to the static config file (default: $OPENFAN_CONFIG or ./openfand.toml)")
		bindOverride        = flag.String("bind", "", "override the configured server hostname")
		portOverride        = flag.Int("port", 0, "override the configured server port")
		verbose             = flag.Bool("verbose", false, "enable debug-level logging and per-transaction wire tracing")
		allowMissingDevices = flag.Bool("allow-missing-devices", false, "do not fail startup when a configured device cannot be opened; retry in the background instead")
	)
	flag.Parse()

	level := log.LevelInfo
	if *verbose {
		level = log.LevelDebug
	}
	logger := log.NewDefaultLogger(level)
	log.SetGlobalLogger(logger)

	path := *configPath
	if path == "" {
		path = os.Getenv(configPathEnvVar)
	}
	if path == "" {
		path = "./openfand.toml"
	}

	static, err := config.LoadStatic(path)
	if err != nil {
		logger.Error("openfand: failed to load static config", "path", path, "error", err)
		return 1
	}
	if len(static.Controllers) == 0 {
		logger.Error("openfand: static config has no [[controllers]] entries")
		return 1
	}

	hostname := static.Server.Hostname
	if *bindOverride != "" {
		hostname = *bindOverride
	}
	port := static.Server.Port
	if *portOverride != 0 {
		port = *portOverride
	}
	timeout := time.Duration(static.Server.CommunicationTimeoutSecs) * time.Second
	reconnectCfg := static.Reconnect.ToManagerConfig()

	boards := make(map[string]board.Descriptor, len(static.Controllers))
	for _, c := range static.Controllers {
		desc, err := board.ParseSelector(c.Board)
		if err != nil {
			logger.Error("openfand: invalid board selector", "controller", c.ID, "board", c.Board, "error", err)
			return 1
		}
		boards[c.ID] = desc
	}

	reg := registry.New()
	var managers []namedManager
	for _, c := range static.Controllers {
		desc := boards[c.ID]

		if c.Device == "" {
			logger.Info("openfand: registering mock controller", "controller", c.ID, "board", desc.Name)
			if err := reg.Register(registry.Entry{ID: c.ID, Board: desc, Description: c.Description}); err != nil {
				logger.Error("openfand: failed to register controller", "controller", c.ID, "error", err)
				return 1
			}
			continue
		}

		opener := serialport.NewOpener(desc.BaudRate, logger)
		facade, openErr := openAndProbe(opener, c.Device, desc, timeout, *verbose, logger)
		if openErr != nil {
			if !*allowMissingDevices {
				logger.Error("openfand: failed to open configured device", "controller", c.ID, "device", c.Device, "error", openErr)
				return 1
			}
			logger.Warn("openfand: device unavailable at startup, will retry in the background", "controller", c.ID, "device", c.Device, "error", openErr)
		}

		mgr := connmgr.New(c.Device, desc, opener, timeout, *verbose, reconnectCfg, facade, logger)
		if err := reg.Register(registry.Entry{ID: c.ID, Board: desc, Manager: mgr, Description: c.Description}); err != nil {
			logger.Error("openfand: failed to register controller", "controller", c.ID, "error", err)
			return 1
		}
		managers = append(managers, namedManager{id: c.ID, manager: mgr})
	}

	rc, err := config.LoadRuntimeConfig(static.DataDir, boards)
	if err != nil {
		logger.Error("openfand: failed to load runtime config", "data_dir", static.DataDir, "error", err)
		return 1
	}
	if err := config.ValidateStartup(rc, boards, logger); err != nil {
		logger.Error("openfand: startup validation failed", "error", err)
		return 1
	}

	primaryID := static.Controllers[0].ID
	coreAPI := api.New(reg, rc, primaryID, logger)

	ctx, cancel := shutdown.NotifyContext(context.Background())
	defer cancel()

	tree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(log.NewOversightLogger(logger)),
	)
	for _, nm := range managers {
		if err := tree.Add(nm.manager.HeartbeatChildProcess(), oversight.Transient(), oversight.Timeout(timeout), nm.id+"-heartbeat"); err != nil {
			logger.Error("openfand: failed to add controller to supervision tree", "controller", nm.id, "error", err)
			return 1
		}
	}
	go func() {
		if err := tree.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("openfand: supervision tree stopped", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", hostname, port)
	handler := http.StripPrefix("/api/v1", httpapi.New(coreAPI, logger).Handler())
	srv := &http.Server{Addr: addr, Handler: handler}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("openfand: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("openfand: server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("openfand: shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), static.Shutdown.GracePeriod())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("openfand: http server did not drain cleanly", "error", err)
	}

	shutdown.New(coreAPI, static.Shutdown, logger).Execute()
	return 0
}

type namedManager struct {
	id      string
	manager *connmgr.Manager
}

// openAndProbe opens path and confirms the controller answers on the
// wire before handing a facade to connmgr.New. A nil facade with a
// non-nil error tells the caller the device could not be reached; the
// manager still gets built so reconnection (if enabled) can keep trying.
func openAndProbe(opener *serialport.Opener, path string, desc board.Descriptor, timeout time.Duration, debug bool, logger *slog.Logger) (*fancontroller.Facade, error) {
	transport, err := opener.Open(path, timeout, debug)
	if err != nil {
		return nil, err
	}

	engine := wire.NewEngine(transport, timeout, logger)
	facade := fancontroller.New(engine, desc, logger)
	if _, err := facade.GetFwInfo(); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return facade, nil
}
