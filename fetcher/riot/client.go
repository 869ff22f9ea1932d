package riot

import (
	"context"
	"errors"
	"fmt"
	"lolanalyzer/pkg/config"
	"lolanalyzer/pkg/messages"
	"lolanalyzer/pkg/metrics"
	"net/http"
	"strconv"
	"strings"
)

// ErrMissingApiKey is returned when the client is built without a key.
var ErrMissingApiKey = config.ErrMissingApiKey

// StatusError is returned for any response that isn't a 200.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.BadStatusCodeMsg, e.StatusCode, e.URL)
}

// Client does authenticated requests against a single platform host.
type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
	apiKey     string
	baseURL    string
}

// NewClient creates the client for the configured region.
// The limiter may be shared between clients of the same key.
func NewClient(cfg config.RiotConfiguration, limiter *RateLimiter) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if limiter == nil {
		return nil, errors.New("the rate limiter can't be nil")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(cfg.Region))
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		apiKey:     strings.TrimSpace(cfg.ApiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// Do a authenticated GET request to the Riot API.
// Return the response, the caller must close the body.
func (c *Client) authGet(ctx context.Context, path string) (*http.Response, error) {
	url := c.baseURL + path

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the request: %w", err)
	}

	// The key goes in the header to keep it out of URLs and logs.
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RiotRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", url, err)
	}

	metrics.RiotRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return resp, nil
}
