// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// ClientConfig holds the settings for talking to a paperless-ngx instance.
// It is passed explicitly to the client constructor; there is no ambient
// global configuration.
type ClientConfig struct {
	// BaseURL is the root of the paperless-ngx instance
	// (e.g. "https://paperless.example.org"). A trailing slash is tolerated.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Token is the API token sent as "Authorization: Token <value>".
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Timeout is the HTTP request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds the retry attempts for transient failures (default 4).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PageSize is the page size requested from paginated endpoints (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// BatchSize caps the number of documents per bulk-edit request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// Metric selects the string-similarity measure used for name comparison.
type Metric string

const (
	// MetricJaroWinkler is the default measure; it favors shared prefixes,
	// which suits organization names ("Acme Corp" vs "Acme Co").
	MetricJaroWinkler Metric = "jaro-winkler"

	// MetricLevenshtein is edit distance normalized by the longer name.
	MetricLevenshtein Metric = "levenshtein"
)

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricJaroWinkler, MetricLevenshtein:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown similarity metric %q (want %s or %s)", s, MetricJaroWinkler, MetricLevenshtein)
}

// DefaultSimilarityThreshold is the similarity cutoff used when none is given.
const DefaultSimilarityThreshold = 0.9

// SimilarityConfig holds settings for duplicate/similarity detection.
type SimilarityConfig struct {
	// Threshold is the minimum ratio, in [0,1], for two names to be
	// considered similar. 0 matches everything; the CLI flag layer
	// supplies DefaultSimilarityThreshold when the user gives none.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Metric selects the similarity measure (default jaro-winkler).
	Metric Metric `json:"metric" yaml:"metric"`
}

// OutputFormat selects how list results are rendered.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputYAML:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, or yaml)", s)
}
