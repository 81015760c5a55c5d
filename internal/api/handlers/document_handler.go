package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/docchat/internal/services"
)

type DocumentHandler struct {
	chat     *services.ChatService
	maxBytes int64
}

func NewDocumentHandler(chat *services.ChatService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{chat: chat, maxBytes: maxBytes}
}

func (h *DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/{sessionID}/document", h.UploadDocument)
}

// UploadDocument reads the multipart "file" field and hands it to the chat service.
// Extraction problems never fail the request; has_text tells whether text was stored.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		respondError(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("DocumentHandler: reading %s failed: %v", header.Filename, err)
		respondError(w, http.StatusBadRequest, "could not read file")
		return
	}

	doc, err := h.chat.Upload(r.Context(), chi.URLParam(r, "sessionID"), header.Filename, data)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// isPDF mirrors an accept="application/pdf" picker: the declared type decides,
// and generic or missing types fall back to the file extension.
func isPDF(fileName, contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "application/pdf" {
		return true
	}
	if contentType == "" || mediaType == "application/octet-stream" {
		return strings.HasSuffix(strings.ToLower(fileName), ".pdf")
	}
	return false
}
