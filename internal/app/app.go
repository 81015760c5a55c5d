// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/markdave123-py/docchat/internal/config"
	"github.com/markdave123-py/docchat/internal/core/ingestion_engine"
	"github.com/markdave123-py/docchat/internal/core/llm"
	"github.com/markdave123-py/docchat/internal/services"
)

type App struct {
	LLM     *llm.GeminiLLM
	Engines *ingestion_engine.Loader
	Chat    *services.ChatService
	Server  *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	llmProvider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm, %w", err)
	}
	log.Printf("Gemini client initialized for model %s.", cfg.GenModel)

	loader := ingestion_engine.StartLoader(ctx, cfg.PDFEngine, cfg.ExtractorInitTimeout, engineProbe(cfg.PDFEngine))

	chatSvc := services.NewChatService(llmProvider, loader)

	server := NewServer(cfg, chatSvc, loader)

	return &App{LLM: llmProvider, Engines: loader, Chat: chatSvc, Server: server}, nil
}

func engineProbe(name string) ingestion_engine.Probe {
	if name == config.EngineDocconv {
		useReadability := false
		return ingestion_engine.ProbeDocconv(useReadability)
	}
	return ingestion_engine.ProbeNative()
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
}
