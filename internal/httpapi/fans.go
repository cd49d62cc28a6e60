package httpapi

import "net/http"

func (s *Server) getFanStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.api.GetFanStatus(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) getFanPWM(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	pct, err := s.api.GetFanPWM(r.PathValue("id"), fanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"percent": pct})
}

type percentRequest struct {
	Percent int `json:"percent"`
}

func (s *Server) setFanPWM(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	var req percentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetFanPWM(r.PathValue("id"), fanID, req.Percent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) setAllFanPWM(w http.ResponseWriter, r *http.Request) {
	var req percentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetAllFanPWM(r.PathValue("id"), req.Percent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) getFanRPM(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	rpm, err := s.api.GetFanRPM(r.PathValue("id"), fanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rpm": rpm})
}

type rpmRequest struct {
	RPM int `json:"rpm"`
}

func (s *Server) setFanRPM(w http.ResponseWriter, r *http.Request) {
	fanID, ok := pathInt(w, r, "fanID")
	if !ok {
		return
	}
	var req rpmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.api.SetFanRPM(r.PathValue("id"), fanID, req.RPM); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
