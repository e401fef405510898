package server

import (
	"io"
	"net/http"
)

// maxImportBytes caps an uploaded export at 64 MiB.
const maxImportBytes = 64 << 20

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty export"})
		return
	}
	if len(data) > maxImportBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "export too large"})
		return
	}

	stats, err := s.imp.ImportCSV(r.Context(), data)
	if err != nil {
		s.log.Error("import failed", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.hevy == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no remote API key configured"})
		return
	}

	stats, err := s.imp.Sync(r.Context(), s.hevy)
	if err != nil {
		s.log.Error("sync failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
