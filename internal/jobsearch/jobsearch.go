// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobsearch queries a Workday job search API, pages through the
// results, and filters job titles by the search text.
//
// The workflow is linear: Validate a RawConfig into a types.SearchConfig,
// then Run fetches every page, filters the titles, and writes the report.
package jobsearch

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/job-search/pkg/types"
)

// Error kinds returned by the workflow. Callers test them with errors.Is.
var (
	// ErrValidation marks configuration that failed input validation.
	ErrValidation = errors.New("input validation failed")

	// ErrTransport marks a request that could not be completed or returned
	// a non-2xx status.
	ErrTransport = errors.New("transport failure")

	// ErrDecode marks a response body that could not be decoded or lacks
	// a required attribute.
	ErrDecode = errors.New("decode failure")
)

// Run fetches all postings for cfg, filters them by cfg.SearchText, and
// writes the report to w. cfg must come from Validate.
func Run(ctx context.Context, client *Client, cfg types.SearchConfig, w io.Writer) (types.RunResult, error) {
	result := types.RunResult{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Config:    cfg,
	}

	all, err := client.FetchPostings(ctx, cfg)
	if err != nil {
		return result, err
	}
	result.All = all
	result.Matched = FilterPostings(all, cfg.SearchText)

	Report(w, types.Titles(result.All), types.Titles(result.Matched), cfg.SearchText)
	return result, nil
}
