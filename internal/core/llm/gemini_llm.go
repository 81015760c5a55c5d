package llm

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/markdave123-py/docchat/internal/core"
	"github.com/markdave123-py/docchat/internal/models"
)

// Gemini names the assistant side of a conversation "model".
const (
	geminiUserRole  = "user"
	geminiModelRole = "model"
)

type GeminiLLM struct {
	client    *genai.Client
	modelName string
}

func NewGeminiLLM(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiLLM{client: cl, modelName: modelName}, nil
}

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Generate sends history plus prompt as one generateContent call and returns
// the first candidate's first text part, or "" when the response has none.
// Blocked responses and API error responses are treated as having none; only
// transport and decoding failures are returned as errors.
func (g *GeminiLLM) Generate(ctx context.Context, history []models.ChatMessage, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)

	cs := m.StartChat()
	cs.History = toContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		// A blocked prompt or candidate carries no usable text.
		return "", nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		// The API answered with an error body instead of candidates.
		log.Printf("GeminiLLM: %s answered with an error: %v", g.modelName, apiErr)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return ReplyText(resp), nil
}

// toContents maps chat messages onto Gemini turns in order.
func toContents(history []models.ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := geminiUserRole
		if msg.Role == models.RoleAssistant {
			role = geminiModelRole
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return out
}

// ReplyText reads candidates[0].content.parts[0] as text.
func ReplyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 {
		return ""
	}
	if t, ok := c.Content.Parts[0].(genai.Text); ok {
		return string(t)
	}
	return ""
}

var _ core.LLMProvider = (*GeminiLLM)(nil)
