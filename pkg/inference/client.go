// Package inference provides HTTP clients for the external text classifiers
// (sentiment, emotion, linguistic analysis). The models themselves run behind
// simple JSON endpoints; this package only does the wire plumbing.
package inference

import (
	"time"

	"github.com/go-resty/resty/v2"

	"clipmaster/config"
)

const defaultTimeout = 30 * time.Second

func newHTTPClient(endpoint config.Endpoint, proxy string) *resty.Client {
	client := resty.New().
		SetBaseURL(endpoint.BaseUrl).
		SetHeader("Content-Type", "application/json")

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
	return client
}
