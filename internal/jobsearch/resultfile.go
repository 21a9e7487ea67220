// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/job-search/pkg/types"
)

// ResultFile is the on-disk record of one run: the query that was sent,
// summary counts, and the matching postings.
type ResultFile struct {
	Query   ResultQuery        `yaml:"query"`
	Summary ResultSummary      `yaml:"summary"`
	Matched []types.JobPosting `yaml:"matched"`
}

// ResultQuery stores the search parameters of the run.
type ResultQuery struct {
	Endpoint   string   `yaml:"endpoint"`
	SearchText string   `yaml:"search_text"`
	Locations  []string `yaml:"locations,omitempty"`
	PageSize   int      `yaml:"page_size"`
}

// ResultSummary stores result counts and a timestamp.
type ResultSummary struct {
	RunID     string    `yaml:"run_id"`
	Total     int       `yaml:"total"`
	Matched   int       `yaml:"matched"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves the run to a YAML file.
func WriteResultFile(path string, r types.RunResult) error {
	rf := ResultFile{
		Query: ResultQuery{
			Endpoint:   r.Config.Endpoint,
			SearchText: r.Config.SearchText,
			Locations:  r.Config.Locations,
			PageSize:   r.Config.PageSize,
		},
		Summary: ResultSummary{
			RunID:     r.ID,
			Total:     len(r.All),
			Matched:   len(r.Matched),
			Timestamp: r.StartedAt,
		},
		Matched: r.Matched,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
