package handler

import (
	"net/http"
)

// HealthHandler reports service and model status
type HealthHandler struct {
	characters   int
	modelVersion string
}

// NewHealthHandler creates a new health handler. The process only starts
// serving after the model artifact loaded, so a reachable handler means
// the model is available.
func NewHealthHandler(characters int, modelVersion string) *HealthHandler {
	return &HealthHandler{characters: characters, modelVersion: modelVersion}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"model_loaded": true,
		"characters":   h.characters,
		"modelVersion": h.modelVersion,
	})
}
