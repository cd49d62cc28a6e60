package httpapi

import "net/http"

func (s *Server) listCurves(w http.ResponseWriter, r *http.Request) {
	curves, err := s.api.ListCurves(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, curves)
}

func (s *Server) setCurve(w http.ResponseWriter, r *http.Request) {
	var req curveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetCurve(r.PathValue("id"), r.PathValue("name"), req.toConfig()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteCurve(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteCurve(r.PathValue("id"), r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) interpolateCurve(w http.ResponseWriter, r *http.Request) {
	tempC, ok := queryFloat(w, r, "temp")
	if !ok {
		return
	}
	pct, err := s.api.InterpolateCurve(r.PathValue("id"), r.PathValue("name"), tempC)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"percent": pct})
}
