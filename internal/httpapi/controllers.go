package httpapi

import "net/http"

func (s *Server) listControllers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.api.ListControllers())
}

func (s *Server) getControllerInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.api.GetControllerInfo(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) forceReconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.api.ForceReconnect(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
