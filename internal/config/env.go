package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EngineNative  = "native"
	EngineDocconv = "docconv"
)

type Config struct {
	AIAPIKey             string
	GenModel             string
	Port                 string
	PDFEngine            string
	ExtractorInitTimeout time.Duration
	MaxUploadBytes       int64
	CORSOrigins          []string
	WebDir               string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Parse builds a Config from the current environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{
		AIAPIKey:             getEnv("GEMINI_API_KEY", ""),
		GenModel:             getEnv("GEN_MODEL", "gemini-2.0-flash"),
		Port:                 getEnv("PORT", "8080"),
		PDFEngine:            strings.ToLower(getEnv("PDF_ENGINE", EngineNative)),
		ExtractorInitTimeout: getEnvDuration("EXTRACTOR_INIT_TIMEOUT", 30*time.Second),
		MaxUploadBytes:       int64(getEnvInt("MAX_UPLOAD_MB", 32)) << 20,
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		WebDir:               getEnv("WEB_DIR", ""),
	}

	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if cfg.PDFEngine != EngineNative && cfg.PDFEngine != EngineDocconv {
		return nil, fmt.Errorf("PDF_ENGINE=%q is not one of %q, %q", cfg.PDFEngine, EngineNative, EngineDocconv)
	}
	if cfg.ExtractorInitTimeout <= 0 {
		return nil, fmt.Errorf("EXTRACTOR_INIT_TIMEOUT must be positive")
	}

	return cfg, nil
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("WARN: %s=%q not a positive int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a duration, using default %s", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
