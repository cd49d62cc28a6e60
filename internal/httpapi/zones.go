package httpapi

import "net/http"

func (s *Server) listZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.ListZones())
}

func (s *Server) setZone(w http.ResponseWriter, r *http.Request) {
	var req zoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetZone(r.PathValue("name"), req.toConfig()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteZone(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteZone(r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) applyZone(w http.ResponseWriter, r *http.Request) {
	var req percentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.ApplyZone(r.PathValue("name"), req.Percent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
