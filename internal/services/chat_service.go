package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/docchat/internal/core"
	"github.com/markdave123-py/docchat/internal/models"
)

// FallbackReply is appended when the model answers without any text.
const FallbackReply = "AI could not respond."

// documentMarker separates the user's words from the attached PDF text in the outgoing turn.
const documentMarker = "\n\n[PDF Content Below]\n"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrBusy            = errors.New("a reply is already pending for this session")
)

// session holds one conversation. mu guards every field below it.
type session struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	messages   []models.ChatMessage
	document   *models.Document
	generation uint64
	loading    bool
}

// ChatService keeps sessions in memory and dispatches turns to the LLM.
type ChatService struct {
	llm     core.LLMProvider
	engines core.EngineSource

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewChatService(llm core.LLMProvider, engines core.EngineSource) *ChatService {
	return &ChatService{
		llm:      llm,
		engines:  engines,
		sessions: make(map[string]*session),
	}
}

// SendResult is the outcome of one dispatch. Reply is nil when the LLM call failed.
type SendResult struct {
	Message models.ChatMessage  `json:"message"`
	Reply   *models.ChatMessage `json:"reply"`
}

func (s *ChatService) NewSession(_ context.Context) models.ChatSession {
	sess := &session{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		messages:  make([]models.ChatMessage, 0, 16),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.snapshot()
}

func (s *ChatService) Snapshot(_ context.Context, sessionID string) (models.ChatSession, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return models.ChatSession{}, err
	}
	return sess.snapshot(), nil
}

// Reset drops the session and everything attached to it.
func (s *ChatService) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Send appends the user turn, asks the LLM once and appends its reply.
// An LLM failure is logged and absorbed: the result carries no reply and err is nil.
func (s *ChatService) Send(ctx context.Context, sessionID, text string) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.loading {
		sess.mu.Unlock()
		return nil, ErrBusy
	}
	history := make([]models.ChatMessage, len(sess.messages))
	copy(history, sess.messages)

	prompt := text
	if sess.document != nil && sess.document.Text != "" {
		prompt = text + documentMarker + sess.document.Text
	}

	userMsg := newMessage(models.RoleUser, text)
	sess.messages = append(sess.messages, userMsg)
	sess.loading = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.loading = false
		sess.mu.Unlock()
	}()

	res := &SendResult{Message: userMsg}

	answer, err := s.llm.Generate(ctx, history, prompt)
	if err != nil {
		log.Printf("ChatService: session %s: fetching AI response failed: %v", sessionID, err)
		return res, nil
	}
	if answer == "" {
		answer = FallbackReply
	}

	reply := newMessage(models.RoleAssistant, answer)

	sess.mu.Lock()
	sess.messages = append(sess.messages, reply)
	sess.mu.Unlock()

	res.Reply = &reply
	return res, nil
}

func (s *ChatService) get(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

func (sess *session) snapshot() models.ChatSession {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := models.ChatSession{
		ID:        sess.id,
		Messages:  make([]models.ChatMessage, len(sess.messages)),
		Loading:   sess.loading,
		CreatedAt: sess.createdAt,
	}
	copy(out.Messages, sess.messages)
	if sess.document != nil {
		doc := *sess.document
		out.Document = &doc
	}
	return out
}

func newMessage(role models.Role, text string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
