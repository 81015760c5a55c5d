package models

import (
	"time"
)

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage represents an individual chat message (user or assistant).
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the single PDF attached to a chat session.
type Document struct {
	FileName string `json:"file_name"`
	Text     string `json:"-"`
	HasText  bool   `json:"has_text"`
}

// ChatSession is a read-only view of one conversation and its document.
type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	Document  *Document     `json:"document,omitempty"`
	Loading   bool          `json:"loading"`
	CreatedAt time.Time     `json:"created_at"`
}
