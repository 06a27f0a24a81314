package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/oakmund/registrar/internal/database"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db *database.DB
}

// New creates a new Handlers instance
func New(db *database.DB) *Handlers {
	return &Handlers{db: db}
}

// writeJSON sends a JSON response with the given status code
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// jsonMessage sends a JSON success response
func (h *Handlers) jsonMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true,"message":"` + message + `"}`))
}
