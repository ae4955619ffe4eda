// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with registry requests
	// (e.g. "brain-trials-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RegistryConfig holds settings for the ClinicalTrials.gov client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Statuses is the overall-status filter sent with every page request.
	// Values come from the registry vocabulary (RECRUITING,
	// NOT_YET_RECRUITING, ...).
	Statuses []string `json:"statuses" yaml:"statuses"`

	// PageSize is the per-page result count hint (default 100, max 1000).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxPages bounds the page fetches issued per search term (default 5).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// DefaultStatuses is the status filter used when none is configured:
// actively recruiting trials only.
var DefaultStatuses = []string{"RECRUITING", "NOT_YET_RECRUITING"}

// CacheConfig holds settings for the optional fetch-result cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `json:"path" yaml:"path"`

	// TTL is how long a cached result set stays fresh (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all stage configurations.
type Config struct {
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
