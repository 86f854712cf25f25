package apiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const acceptJSON = "application/json;charset=UTF-8"

// APIClient struct handles all communication with the MusicThread API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a client for the API at baseURL. A zero timeout keeps the
// transport default.
func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// do is the single helper for making API requests. The request is bound to
// ctx so a cancelled inbound request aborts the upstream call too.
func (c *APIClient) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API request")
	}
	req.Header.Set("Accept", acceptJSON)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "musicthread unavailable")
	}
	return resp, nil
}
