package rest

import "net/http"

// handlePing - liveness probe, answers pong without touching storage.
func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Debug("failed to write ping response", "error", err)
	}
}
