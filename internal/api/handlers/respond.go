package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/markdave123-py/docchat/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the chat service's sentinel errors onto status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, services.ErrEmptyMessage):
		respondError(w, http.StatusBadRequest, "message is empty")
	case errors.Is(err, services.ErrBusy):
		respondError(w, http.StatusConflict, "a reply is still pending")
	default:
		log.Printf("unexpected service error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
