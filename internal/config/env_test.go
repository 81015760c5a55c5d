package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}
	if cfg.GenModel != "gemini-2.0-flash" {
		t.Fatalf("unexpected model: %s", cfg.GenModel)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.PDFEngine != EngineNative {
		t.Fatalf("unexpected engine: %s", cfg.PDFEngine)
	}
	if cfg.ExtractorInitTimeout != 30*time.Second {
		t.Fatalf("unexpected init timeout: %s", cfg.ExtractorInitTimeout)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestParseMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is empty")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PDF_ENGINE", "DocConv")
	t.Setenv("EXTRACTOR_INIT_TIMEOUT", "2s")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}
	if cfg.PDFEngine != EngineDocconv {
		t.Fatalf("unexpected engine: %s", cfg.PDFEngine)
	}
	if cfg.ExtractorInitTimeout != 2*time.Second {
		t.Fatalf("unexpected init timeout: %s", cfg.ExtractorInitTimeout)
	}
	if cfg.MaxUploadBytes != 4<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestParseRejectsUnknownEngine(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PDF_ENGINE", "pdfjs")

	if _, err := Parse(); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestParseBadIntFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("EXTRACTOR_INIT_TIMEOUT", "soon")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse err: %v", err)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
	}
	if cfg.ExtractorInitTimeout != 30*time.Second {
		t.Fatalf("unexpected init timeout: %s", cfg.ExtractorInitTimeout)
	}
}
