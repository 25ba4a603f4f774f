package embedding

import (
	"context"
	"time"

	"movie-match-be/pkg/httpjson"
)

const (
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultOpenAIEmbedder = "text-embedding-3-small"
)

// OpenAIProvider calls the OpenAI /embeddings API or a compatible gateway.
type OpenAIProvider struct {
	client *httpjson.Client
	model  string
}

func NewOpenAIProvider(baseURL, apiKey, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = defaultOpenAIEmbedder
	}
	return &OpenAIProvider{
		client: httpjson.New("openai embedding", baseURL, 30*time.Second).WithBearer(apiKey),
		model:  model,
	}
}

type openAIEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	var res openAIEmbeddingResponse
	if err := p.client.Post(ctx, "/embeddings", openAIEmbeddingRequest{Model: p.model, Input: text}, &res); err != nil {
		return nil, err
	}

	values := []float32{}
	if len(res.Data) > 0 {
		values = toFloat32(res.Data[0].Embedding)
	}
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
}
