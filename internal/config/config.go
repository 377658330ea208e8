package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application. Everything has a
// default; the tool must start with no environment at all.
type Config struct {
	DataDir      string
	DatabasePath string

	// Remote generation. The env key takes precedence over the key stored
	// in the data directory; both may be absent.
	GeminiAPIKey string
	GeminiModel  string

	// On-device generation (Ollama-compatible server).
	LocalAIURL   string
	LocalAIModel string
}

// NewFromEnv creates a new Config object from environment variables,
// falling back to defaults.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("CAREPLAN_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".careplan")
	}

	dbPath := os.Getenv("CAREPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "careplan.db")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	localURL := os.Getenv("CAREPLAN_LOCAL_AI_URL")
	if localURL == "" {
		localURL = "http://localhost:11434"
	}

	localModel := os.Getenv("CAREPLAN_LOCAL_AI_MODEL")
	if localModel == "" {
		localModel = "qwen2.5:3b-instruct"
	}

	return &Config{
		DataDir:      dataDir,
		DatabasePath: dbPath,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  geminiModel,
		LocalAIURL:   localURL,
		LocalAIModel: localModel,
	}, nil
}
