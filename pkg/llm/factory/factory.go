package factory

import (
	"fmt"

	"movie-match-be/pkg/llm"
	"movie-match-be/pkg/llm/ollama"
	"movie-match-be/pkg/llm/openai"
)

// Config selects and configures a chat provider.
type Config struct {
	Provider string // "openai" or "ollama"
	Model    string
	BaseURL  string
	APIKey   string // openai only
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai", "":
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return ollama.NewProvider(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
