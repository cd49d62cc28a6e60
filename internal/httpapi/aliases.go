package httpapi

import "net/http"

func (s *Server) listAliases(w http.ResponseWriter, r *http.Request) {
	aliases, err := s.api.ListAliases(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aliases)
}

func (s *Server) setAlias(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	var req aliasRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetAlias(r.PathValue("id"), fanID, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteAlias(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	if err := s.api.DeleteAlias(r.PathValue("id"), fanID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
