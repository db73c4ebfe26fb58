package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

// Fetcher retrieves one HealthCheck
type Fetcher interface {
	Fetch(ctx context.Context) (*model.HealthCheck, error)
}

// Client fetches the health endpoint over HTTP. Only a 2xx with a JSON body is a success;
// any other status fails with "HTTP <status>".
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Fetch(ctx context.Context) (*model.HealthCheck, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var hc model.HealthCheck
	if err := json.NewDecoder(resp.Body).Decode(&hc); err != nil {
		return nil, fmt.Errorf("invalid health response: %w", err)
	}
	return &hc, nil
}
