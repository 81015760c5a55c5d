package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/docchat/internal/services"
)

// EngineStatus reports whether the PDF engine finished initializing.
type EngineStatus interface {
	Status() string
}

type ChatHandler struct {
	chat   *services.ChatService
	engine EngineStatus
}

func NewChatHandler(chat *services.ChatService, engine EngineStatus) *ChatHandler {
	return &ChatHandler{chat: chat, engine: engine}
}

// RegisterRoutes mounts the session and message endpoints on r.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{sessionID}", h.GetSession)
	r.Delete("/sessions/{sessionID}", h.ResetSession)
	r.Post("/sessions/{sessionID}/messages", h.SendMessage)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"extractor": h.engine.Status(),
	})
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.chat.NewSession(r.Context()))
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.chat.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (h *ChatHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.Reset(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage answers 200 even when the model call failed; the reply is then null.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := h.chat.Send(r.Context(), chi.URLParam(r, "sessionID"), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
