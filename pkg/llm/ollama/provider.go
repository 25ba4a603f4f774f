package ollama

import (
	"context"
	"time"

	"movie-match-be/pkg/httpjson"
	"movie-match-be/pkg/llm"
)

const DefaultBaseURL = "http://localhost:11434"

// Provider calls the Ollama /api/chat endpoint without streaming.
type Provider struct {
	client *httpjson.Client
	model  string
}

var _ llm.LLMProvider = (*Provider)(nil)

func NewProvider(baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		client: httpjson.New("ollama chat", baseURL, 120*time.Second),
		model:  model,
	}
}

// BaseURL is the server this provider talks to.
func (p *Provider) BaseURL() string {
	return p.client.BaseURL()
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: p.model, Temperature: 0.7}, opts...)

	req := chatRequest{
		Model:    options.Model,
		Messages: make([]chatMessage, len(history)),
		Options: &chatOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	}
	for i, m := range history {
		req.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	var res chatResponse
	if err := p.client.Post(ctx, "/api/chat", req, &res); err != nil {
		return "", err
	}
	return res.Message.Content, nil
}
