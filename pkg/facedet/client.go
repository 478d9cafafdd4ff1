// Package facedet provides the HTTP adapter for the external face detection
// model. When no endpoint is configured the detector reports unavailable and
// the reframing pipeline falls back to center-based tracking.
package facedet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"clipmaster/config"
	"clipmaster/internal/types"
)

const defaultTimeout = 30 * time.Second

// Client posts sampled frames to a detection endpoint and returns bounding
// boxes. The endpoint handles any color-space conversion the model expects.
type Client struct {
	http      *resty.Client
	available bool
}

type detectResponse struct {
	Faces []types.FaceBox `json:"faces"`
}

func NewClient(endpoint config.Endpoint, proxy string) *Client {
	available := strings.TrimSpace(endpoint.BaseUrl) != ""
	if !available {
		return &Client{available: false}
	}

	client := resty.New().SetBaseURL(endpoint.BaseUrl)

	timeout := defaultTimeout
	if endpoint.TimeoutSeconds > 0 {
		timeout = time.Duration(endpoint.TimeoutSeconds) * time.Second
	}
	client.SetTimeout(timeout)

	if endpoint.ApiKey != "" {
		client.SetAuthToken(endpoint.ApiKey)
	}
	if proxy != "" {
		client.SetProxy(proxy)
	}

	return &Client{http: client, available: true}
}

func (c *Client) Available() bool {
	return c.available
}

func (c *Client) Detect(ctx context.Context, frame types.Frame) ([]types.FaceBox, error) {
	if !c.available {
		return nil, fmt.Errorf("face detector not configured")
	}

	var result detectResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "image/jpeg").
		SetBody(frame.Data).
		SetResult(&result).
		Post("/v1/detect")
	if err != nil {
		return nil, fmt.Errorf("face detect request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("face detect endpoint returned %s", resp.Status())
	}
	return result.Faces, nil
}
