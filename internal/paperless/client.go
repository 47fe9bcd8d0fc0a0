// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paperless is a thin client for the paperless-ngx REST API. It
// covers the correspondent and document endpoints this tool needs:
// paginated listing, single fetches, document reassignment, and
// correspondent deletion. All requests carry token authentication and the
// versioned API-compatibility header.
package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/correspondent-manager/internal/httputil"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// apiVersion pins the paperless-ngx API compatibility version.
const apiVersion = 9

const (
	defaultTimeout   = 60 * time.Second
	defaultPageSize  = 100
	defaultUserAgent = "correspondent-manager/0.1"
)

// APIError is a non-2xx response from the paperless-ngx API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("paperless API: HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("paperless API: HTTP %d", e.StatusCode)
}

// IsAuth reports whether err is an authentication failure (HTTP 401).
func IsAuth(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a missing-resource error (HTTP 404).
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// Client talks to one paperless-ngx instance.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	maxRetries int
	pageSize   int
	httpClient *http.Client
}

// New builds a client from an explicit configuration. BaseURL and Token
// are required; zero values elsewhere get defaults.
func New(cfg types.ClientConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("paperless URL is required (set PAPERLESS_URL or pass --url)")
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("paperless API token is required (set PAPERLESS_TOKEN or pass --token)")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    base,
		token:      token,
		userAgent:  userAgent,
		maxRetries: cfg.MaxRetries,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// page is the paperless-ngx paginated envelope.
type page[T any] struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []T    `json:"results"`
}

// do issues an authenticated request and decodes the JSON response into
// out when out is non-nil. 401 and 404 surface immediately as *APIError;
// transient failures are retried by httputil.DoWithRetry.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", fmt.Sprintf("application/json; version=%d", apiVersion))
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", url, err)
	}
	return nil
}

// errorDetail extracts the "detail" field from an error body, falling
// back to a trimmed excerpt of the raw body.
func errorDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(data))
}
