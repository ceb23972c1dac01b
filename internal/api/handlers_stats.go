package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleRunStats(w http.ResponseWriter, r *http.Request) {
	snap := s.stats.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error("failed to encode stats", "error", err)
	}
}
