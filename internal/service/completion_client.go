package service

import (
	"context"
	"fmt"

	"movie-match-be/internal/constant"
	"movie-match-be/internal/entity"
	"movie-match-be/pkg/llm"
	"movie-match-be/pkg/resilience"
)

// ICompletionClient writes the short rationale for a matched movie. Callers
// treat failures as non-fatal.
type ICompletionClient interface {
	Explain(ctx context.Context, userText string, movie *entity.Movie) (string, error)
}

type completionClient struct {
	provider llm.LLMProvider
	model    string
	breaker  *resilience.Breaker[string]
}

func NewCompletionClient(provider llm.LLMProvider, model string, breaker *resilience.Breaker[string]) ICompletionClient {
	return &completionClient{
		provider: provider,
		model:    model,
		breaker:  breaker,
	}
}

func (c *completionClient) Explain(ctx context.Context, userText string, movie *entity.Movie) (string, error) {
	opts := []llm.Option{
		llm.WithTemperature(constant.ExplanationTemperature),
		llm.WithMaxTokens(constant.ExplanationMaxTokens),
	}
	if c.model != "" {
		opts = append(opts, llm.WithModel(c.model))
	}

	call := func() (string, error) {
		return c.provider.Chat(ctx, explanationMessages(userText, movie), opts...)
	}

	if c.breaker == nil {
		return call()
	}
	return c.breaker.Execute(call)
}

func explanationMessages(userText string, movie *entity.Movie) []llm.Message {
	title := movie.Title
	if movie.ReleaseYear != "" {
		title = fmt.Sprintf("%s (%s)", movie.Title, movie.ReleaseYear)
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: constant.RecommenderSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("User: %s\nMovie: %s", userText, title)},
	}
}
