package openai

import (
	"context"
	"fmt"
	"time"

	"movie-match-be/pkg/httpjson"
	"movie-match-be/pkg/llm"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Provider talks to any OpenAI-compatible /chat/completions endpoint.
type Provider struct {
	client *httpjson.Client
	model  string
}

var _ llm.LLMProvider = (*Provider)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewProvider(apiKey, baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		client: httpjson.New("chat completion", baseURL, 60*time.Second).WithBearer(apiKey),
		model:  model,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, options...)

	req := chatRequest{
		Model:       opts.Model,
		Messages:    make([]chatMessage, len(history)),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for i, m := range history {
		req.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	var res chatResponse
	if err := p.client.Post(ctx, "/chat/completions", req, &res); err != nil {
		return "", err
	}
	if res.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", res.Error.Message)
	}
	if len(res.Choices) == 0 {
		return "", nil
	}
	return res.Choices[0].Message.Content, nil
}
