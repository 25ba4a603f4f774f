package embedding

import (
	"context"
	"math"
	"time"

	"movie-match-be/pkg/httpjson"
)

const (
	defaultOllamaBaseURL  = "http://localhost:11434"
	defaultOllamaEmbedder = "nomic-embed-text"
)

// OllamaProvider embeds with a local Ollama model. Vectors are scaled to unit
// length before they are returned.
type OllamaProvider struct {
	client *httpjson.Client
	model  string
}

func NewOllamaProvider(baseURL, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if model == "" {
		model = defaultOllamaEmbedder
	}
	return &OllamaProvider{
		client: httpjson.New("ollama embedding", baseURL, 60*time.Second),
		model:  model,
	}
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *OllamaProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	var res ollamaEmbeddingResponse
	if err := p.client.Post(ctx, "/api/embeddings", ollamaEmbeddingRequest{Model: p.model, Prompt: text}, &res); err != nil {
		return nil, err
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: normalizeVector(toFloat32(res.Embedding))},
	}, nil
}

// normalizeVector returns vec scaled to unit length; a zero vector is
// returned unchanged.
func normalizeVector(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
