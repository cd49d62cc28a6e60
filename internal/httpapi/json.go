package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/openfan/openfand/internal/apierr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.Wrap(apierr.InvalidInput, "malformed request body", err)
	}
	return nil
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.PathValue(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, apierr.Newf(apierr.InvalidInput, "%s must be an integer, got %q", name, raw))
		return 0, false
	}
	return n, true
}

func queryFloat(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, apierr.Newf(apierr.InvalidInput, "query parameter %q must be a number, got %q", name, raw))
		return 0, false
	}
	return v, true
}
