package api

import (
	"net/http"

	"github.com/careerstack/resumegest/internal/reader"
)

// handleReaderStats reports remote parse-service latency aggregates.
// When the service runs on local readers only, the snapshot is empty.
func (s *Server) handleReaderStats(w http.ResponseWriter, r *http.Request) {
	var snap reader.StatsSnapshot
	mode := "local"
	if remote := s.orchestrator.RemoteReader(); remote != nil {
		snap = remote.Stats.Snapshot()
		mode = "remote"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":        mode,
		"queue_depth": s.orchestrator.QueueDepth(),
		"latency":     snap,
	})
}
