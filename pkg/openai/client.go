package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseUrl, apiKey, model, proxyAddr string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxyAddr != "" {
		if proxyUrl, err := url.Parse(proxyAddr); err == nil {
			transport.Proxy = http.ProxyURL(proxyUrl)
		}
	}

	// No client timeout here, titling batches can run long on slow models.
	cfg.HTTPClient = &http.Client{
		Transport: transport,
	}

	client := openai.NewClientWithConfig(cfg)
	return &Client{client: client, model: model}
}

// ChatCompletion sends a single-turn prompt and returns the assistant text.
func (c *Client) ChatCompletion(prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
