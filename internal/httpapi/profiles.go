package httpapi

import "net/http"

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.api.ListProfiles(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) setProfile(w http.ResponseWriter, r *http.Request) {
	var prof profileRequest
	if err := decodeJSON(r, &prof); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetProfile(r.PathValue("id"), r.PathValue("name"), prof.toConfig()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteProfile(r.PathValue("id"), r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) applyProfileTo(w http.ResponseWriter, r *http.Request) {
	if err := s.api.ApplyProfileTo(r.PathValue("id"), r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) applyProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.api.ApplyProfile(r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
