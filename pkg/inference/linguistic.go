package inference

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"clipmaster/config"
	"clipmaster/internal/types"
)

// LinguisticClient calls a spaCy-style analysis endpoint for sentence
// boundaries and named-entity counts.
type LinguisticClient struct {
	http *resty.Client
}

func NewLinguisticClient(endpoint config.Endpoint, proxy string) *LinguisticClient {
	return &LinguisticClient{http: newHTTPClient(endpoint, proxy)}
}

func (c *LinguisticClient) Analyze(ctx context.Context, text string) (types.LinguisticInfo, error) {
	var result types.LinguisticInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post("/v1/analyze")
	if err != nil {
		return types.LinguisticInfo{}, fmt.Errorf("linguistic request failed: %w", err)
	}
	if resp.IsError() {
		return types.LinguisticInfo{}, fmt.Errorf("linguistic endpoint returned %s", resp.Status())
	}
	return result, nil
}
