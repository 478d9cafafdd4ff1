package inference

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"clipmaster/config"
	"clipmaster/internal/types"
)

// SentimentClient calls a VADER-style polarity endpoint.
type SentimentClient struct {
	http *resty.Client
}

func NewSentimentClient(endpoint config.Endpoint, proxy string) *SentimentClient {
	return &SentimentClient{http: newHTTPClient(endpoint, proxy)}
}

func (c *SentimentClient) PolarityScores(ctx context.Context, text string) (types.Sentiment, error) {
	var result types.Sentiment
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post("/v1/sentiment")
	if err != nil {
		return types.Sentiment{}, fmt.Errorf("sentiment request failed: %w", err)
	}
	if resp.IsError() {
		return types.Sentiment{}, fmt.Errorf("sentiment endpoint returned %s", resp.Status())
	}
	return result, nil
}
