package inference

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"clipmaster/config"
)

// EmotionClient calls a text-classification endpoint returning per-label
// probabilities (joy, surprise, anger, fear, sadness, disgust, neutral).
type EmotionClient struct {
	http *resty.Client
}

type emotionResponse struct {
	Emotions map[string]float64 `json:"emotions"`
}

func NewEmotionClient(endpoint config.Endpoint, proxy string) *EmotionClient {
	return &EmotionClient{http: newHTTPClient(endpoint, proxy)}
}

func (c *EmotionClient) Classify(ctx context.Context, text string) (map[string]float64, error) {
	var result emotionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post("/v1/emotion")
	if err != nil {
		return nil, fmt.Errorf("emotion request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("emotion endpoint returned %s", resp.Status())
	}
	return result.Emotions, nil
}
