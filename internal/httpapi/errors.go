package httpapi

import (
	"net/http"

	"github.com/openfan/openfand/internal/apierr"
)

// statusFor maps the closed error taxonomy of spec §7 onto an HTTP
// status code.
func statusFor(err error) int {
	kind, ok := apierr.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case apierr.InvalidInput:
		return http.StatusBadRequest
	case apierr.NotFound:
		return http.StatusNotFound
	case apierr.Duplicate:
		return http.StatusConflict
	case apierr.Timeout:
		return http.StatusGatewayTimeout
	case apierr.Serial, apierr.Parse, apierr.Hardware:
		return http.StatusBadGateway
	case apierr.DeviceNotFound, apierr.DeviceDisconnected, apierr.Reconnecting, apierr.ReconnectionFailed:
		return http.StatusServiceUnavailable
	case apierr.Config:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
