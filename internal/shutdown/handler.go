package shutdown

import (
	"log/slog"

	"github.com/openfan/openfand/internal/apierr"
	"github.com/openfan/openfand/internal/api"
	"github.com/openfan/openfand/internal/config"
)

// Handler runs the safe-boot sequence against the primary controller.
// The zero value is not usable; build one with New.
type Handler struct {
	api     *api.API
	enabled bool
	profile string
	logger  *slog.Logger
}

// New builds a Handler from the static [shutdown] section.
func New(a *api.API, cfg config.ShutdownSection, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{api: a, enabled: cfg.Enabled, profile: cfg.Profile, logger: logger}
}

// Execute applies the configured safe-boot profile to the primary
// controller. It never returns an error: every failure mode (disabled,
// profile missing, per-fan apply failure) is logged and swallowed,
// since by the time this runs the process is on its way out regardless.
func (h *Handler) Execute() {
	if !h.enabled {
		h.logger.Info("shutdown: safe-boot disabled, leaving fans as-is")
		return
	}

	h.logger.Info("shutdown: applying safe-boot profile", "profile", h.profile)
	if err := h.api.ApplyProfile(h.profile); err != nil {
		if apierr.Is(err, apierr.NotFound) {
			h.logger.Warn("shutdown: safe-boot profile not found, leaving fans as-is", "profile", h.profile)
			return
		}
		h.logger.Error("shutdown: failed to apply safe-boot profile", "profile", h.profile, "error", err)
		return
	}
	h.logger.Info("shutdown: safe-boot profile applied", "profile", h.profile)
}
