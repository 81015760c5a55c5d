package services

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/markdave123-py/docchat/internal/core/ingestion_engine"
	"github.com/markdave123-py/docchat/internal/models"
)

// Upload attaches a PDF to the session. The filename is recorded right away and
// any earlier text is cleared; the text is stored only if this upload's extraction
// succeeds and no newer upload started meanwhile. Extraction errors are logged, not returned.
func (s *ChatService) Upload(ctx context.Context, sessionID, fileName string, data []byte) (models.Document, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return models.Document{}, err
	}

	name := cleanFileName(fileName)

	sess.mu.Lock()
	sess.generation++
	gen := sess.generation
	sess.document = &models.Document{FileName: name}
	sess.mu.Unlock()

	text, ok := s.extract(ctx, sessionID, name, data)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.generation {
		log.Printf("DocumentService: session %s: discarding %s, a newer upload replaced it", sessionID, name)
		return models.Document{FileName: name}, nil
	}
	if ok && text != "" {
		sess.document.Text = text
		sess.document.HasText = true
	}
	return *sess.document, nil
}

func (s *ChatService) extract(ctx context.Context, sessionID, name string, data []byte) (string, bool) {
	engine, err := s.engines.Engine(ctx)
	if err != nil {
		log.Printf("DocumentService: session %s: no pdf engine for %s: %v", sessionID, name, err)
		return "", false
	}

	text, err := ingestion_engine.ExtractText(ctx, engine, data)
	if err != nil {
		log.Printf("DocumentService: session %s: error reading %s: %v", sessionID, name, err)
		return "", false
	}

	log.Printf("DocumentService: session %s: extracted %d bytes of text from %s", sessionID, len(text), name)
	return text, true
}

// cleanFileName strips any directory components a client may send.
func cleanFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
