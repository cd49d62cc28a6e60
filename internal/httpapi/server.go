package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openfan/openfand/internal/api"
)

// Server is the net/http shell around an *api.API. The zero value is
// not usable; build one with New.
type Server struct {
	api    *api.API
	logger *slog.Logger
}

// New builds a Server dispatching onto a.
func New(a *api.API, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{api: a, logger: logger}
}

// Handler builds the routed, logging-wrapped http.Handler for this
// server. Route registration uses Go's method-and-pattern ServeMux
// syntax ("GET /path/{id}") rather than a third-party router, since the
// daemon's surface is small and stdlib now covers it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /controllers", s.listControllers)
	mux.HandleFunc("GET /controllers/{id}", s.getControllerInfo)
	mux.HandleFunc("POST /controllers/{id}/reconnect", s.forceReconnect)

	mux.HandleFunc("GET /controllers/{id}/fans", s.getFanStatus)
	mux.HandleFunc("GET /controllers/{id}/fans/{fanID}/pwm", s.getFanPWM)
	mux.HandleFunc("PUT /controllers/{id}/fans/{fanID}/pwm", s.setFanPWM)
	mux.HandleFunc("PUT /controllers/{id}/fans/pwm", s.setAllFanPWM)
	mux.HandleFunc("GET /controllers/{id}/fans/{fanID}/rpm", s.getFanRPM)
	mux.HandleFunc("PUT /controllers/{id}/fans/{fanID}/rpm", s.setFanRPM)

	mux.HandleFunc("GET /controllers/{id}/profiles", s.listProfiles)
	mux.HandleFunc("PUT /controllers/{id}/profiles/{name}", s.setProfile)
	mux.HandleFunc("DELETE /controllers/{id}/profiles/{name}", s.deleteProfile)
	mux.HandleFunc("POST /controllers/{id}/profiles/{name}/apply", s.applyProfileTo)
	mux.HandleFunc("POST /profiles/{name}/apply", s.applyProfile)

	mux.HandleFunc("GET /controllers/{id}/aliases", s.listAliases)
	mux.HandleFunc("PUT /controllers/{id}/aliases/{fanID}", s.setAlias)
	mux.HandleFunc("DELETE /controllers/{id}/aliases/{fanID}", s.deleteAlias)

	mux.HandleFunc("GET /zones", s.listZones)
	mux.HandleFunc("PUT /zones/{name}", s.setZone)
	mux.HandleFunc("DELETE /zones/{name}", s.deleteZone)
	mux.HandleFunc("POST /zones/{name}/apply", s.applyZone)

	mux.HandleFunc("GET /controllers/{id}/curves", s.listCurves)
	mux.HandleFunc("PUT /controllers/{id}/curves/{name}", s.setCurve)
	mux.HandleFunc("DELETE /controllers/{id}/curves/{name}", s.deleteCurve)
	mux.HandleFunc("GET /controllers/{id}/curves/{name}/interpolate", s.interpolateCurve)

	mux.HandleFunc("GET /controllers/{id}/cfm", s.listCFM)
	mux.HandleFunc("PUT /controllers/{id}/cfm/{port}", s.setCFM)
	mux.HandleFunc("DELETE /controllers/{id}/cfm/{port}", s.deleteCFM)
	mux.HandleFunc("GET /controllers/{id}/cfm/{port}/estimate", s.estimatedCFM)

	return s.withLogging(mux)
}

// withLogging logs method, path, status and latency for every request,
// matching the teacher's habit of wrapping its root handler with one
// instrumentation layer rather than scattering logging through leaf
// handlers.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("httpapi: request",
			"method", r.Method, "path", r.URL.Path,
			"status", sw.status, "duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}
