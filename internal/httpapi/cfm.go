package httpapi

import "net/http"

func (s *Server) listCFM(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.api.ListCFM(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappings)
}

func (s *Server) setCFM(w http.ResponseWriter, r *http.Request) {
	port, ok := pathInt(w, r, "port")
	if !ok {
		return
	}
	var req cfmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetCFM(r.PathValue("id"), port, req.CFMAt100); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteCFM(w http.ResponseWriter, r *http.Request) {
	port, ok := pathInt(w, r, "port")
	if !ok {
		return
	}
	if err := s.api.DeleteCFM(r.PathValue("id"), port); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) estimatedCFM(w http.ResponseWriter, r *http.Request) {
	port, ok := pathInt(w, r, "port")
	if !ok {
		return
	}
	pwm, ok := queryFloat(w, r, "pwm")
	if !ok {
		return
	}
	cfm, err := s.api.EstimatedCFM(r.PathValue("id"), port, int(pwm))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"cfm": cfm})
}
