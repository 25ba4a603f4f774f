package factory

import (
	"testing"

	"movie-match-be/pkg/llm/ollama"
	"movie-match-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		check   func(t *testing.T, p interface{})
		wantErr bool
	}{
		{
			name: "openai",
			cfg:  Config{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk"},
			check: func(t *testing.T, p interface{}) {
				assert.IsType(t, &openai.Provider{}, p)
			},
		},
		{
			name: "empty defaults to openai",
			cfg:  Config{},
			check: func(t *testing.T, p interface{}) {
				assert.IsType(t, &openai.Provider{}, p)
			},
		},
		{
			name: "ollama with default url",
			cfg:  Config{Provider: "ollama", Model: "llama3"},
			check: func(t *testing.T, p interface{}) {
				require.IsType(t, &ollama.Provider{}, p)
				assert.Equal(t, ollama.DefaultBaseURL, p.(*ollama.Provider).BaseURL())
			},
		},
		{name: "unknown", cfg: Config{Provider: "gemini"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
