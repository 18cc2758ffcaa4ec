// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the arXiv API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv query endpoint. Empty selects the public API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Delay is the minimum spacing between outbound requests (default 3s,
	// the interval the arXiv API terms of use ask for). A negative value
	// disables pacing.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// MaxRetries is the number of attempts for transient failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CacheDir is the directory for cached result sets. Empty disables
	// caching entirely.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`

	// CacheTTL is how long a cached result set stays fresh (default 24h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// LibraryConfig holds settings for the local paper library.
type LibraryConfig struct {
	// Path is the SQLite database file for saved papers.
	Path string `json:"path" yaml:"path"`
}
