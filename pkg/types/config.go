package types

import "time"

// HTTPConfig holds shared HTTP settings used for requests to the job API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "job-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MaxPageSize is the largest page the Workday search API will return.
const MaxPageSize = 20

// SearchConfig holds the validated settings for one search run. It is built
// once by the validator and read-only afterwards.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the Workday jobs API URL the search is POSTed to.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// SearchText is the free-text query. It also drives the title filter.
	SearchText string `json:"search_text" yaml:"search_text"`

	// Locations lists the location facet IDs. Nil means no location filter.
	Locations []string `json:"locations" yaml:"locations"`

	// PageSize is the number of postings requested per page, 1 to MaxPageSize.
	PageSize int `json:"page_size" yaml:"page_size"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Path is the SQLite database file (e.g. "job-search.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
