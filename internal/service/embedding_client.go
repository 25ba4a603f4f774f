package service

import (
	"context"

	"movie-match-be/pkg/embedding"
	"movie-match-be/pkg/resilience"
)

// IEmbeddingClient turns text into a vector. The caller makes sure text is
// not blank.
type IEmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type embeddingClient struct {
	provider embedding.EmbeddingProvider
	breaker  *resilience.Breaker[[]float32]
}

func NewEmbeddingClient(provider embedding.EmbeddingProvider, breaker *resilience.Breaker[[]float32]) IEmbeddingClient {
	return &embeddingClient{
		provider: provider,
		breaker:  breaker,
	}
}

// Embed makes exactly one upstream call and returns an empty slice when the
// response carries no vector.
func (c *embeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	call := func() ([]float32, error) {
		res, err := c.provider.Generate(ctx, text)
		if err != nil {
			return nil, err
		}
		if res == nil || res.Embedding.Values == nil {
			return []float32{}, nil
		}
		return res.Embedding.Values, nil
	}

	if c.breaker == nil {
		return call()
	}
	return c.breaker.Execute(call)
}
