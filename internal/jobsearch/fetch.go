// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/job-search/internal/httputil"
	"github.com/pdiddy/job-search/pkg/types"
)

// Client pages through a Workday job search endpoint.
type Client struct {
	// HTTP is the client used for requests; nil means http.DefaultClient.
	HTTP *http.Client
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// Log receives one progress line per page when non-nil.
	Log io.Writer
}

// NewClient returns a Client configured from cfg.
func NewClient(cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
	}
}

// FetchTitles returns the titles of all postings for cfg, in API order.
func (c *Client) FetchTitles(ctx context.Context, cfg types.SearchConfig) ([]string, error) {
	postings, err := c.FetchPostings(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return types.Titles(postings), nil
}

// FetchPostings requests page 0, reads the total from it, and then requests
// the remaining ceil(total/PageSize)-1 pages at offsets PageSize*p. The page
// count is fixed by the first response. Postings without a title are
// skipped. Any failure aborts the fetch and no postings are returned.
func (c *Client) FetchPostings(ctx context.Context, cfg types.SearchConfig) ([]types.JobPosting, error) {
	if cfg.PageSize < 1 || cfg.PageSize > types.MaxPageSize {
		return nil, fmt.Errorf("%w: page size %d outside 1-%d", ErrValidation, cfg.PageSize, types.MaxPageSize)
	}

	postings := []types.JobPosting{}
	pages := 1
	for page := 0; page < pages; page++ {
		offset := cfg.PageSize * page
		resp, err := c.fetchPage(ctx, cfg, offset)
		if err != nil {
			return nil, fmt.Errorf("page %d (offset %d): %w", page+1, offset, err)
		}

		// Workday reports the total reliably only on the first page.
		if page == 0 {
			if resp.Total == nil {
				return nil, fmt.Errorf("page 1: %w: response has no total", ErrDecode)
			}
			pages = pageCount(*resp.Total, cfg.PageSize)
		}

		for _, jp := range resp.JobPostings {
			if jp.Title == nil {
				continue
			}
			postings = append(postings, types.JobPosting{
				Title:         *jp.Title,
				ExternalPath:  jp.ExternalPath,
				LocationsText: jp.LocationsText,
				PostedOn:      jp.PostedOn,
			})
		}
		c.logf("fetched page %d/%d (offset %d, %d postings)\n", page+1, max(pages, 1), offset, len(resp.JobPostings))
	}
	return postings, nil
}

func (c *Client) fetchPage(ctx context.Context, cfg types.SearchConfig, offset int) (*searchResponse, error) {
	body, err := BuildPayload(cfg.SearchText, cfg.Locations, cfg.PageSize, offset)
	if err != nil {
		return nil, err
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	data, err := httputil.PostJSON(ctx, httpClient, cfg.Endpoint, body, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var sr searchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("%w: parsing search response: %w", ErrDecode, err)
	}
	if sr.JobPostings == nil {
		return nil, fmt.Errorf("%w: response has no jobPostings", ErrDecode)
	}
	return &sr, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.Log != nil {
		fmt.Fprintf(c.Log, format, args...)
	}
}

// pageCount returns ceil(total/pageSize) without overflowing for large totals.
func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Workday search API JSON structures.
type searchResponse struct {
	Total       *int             `json:"total"`
	JobPostings []workdayPosting `json:"jobPostings"`
}

type workdayPosting struct {
	Title         *string `json:"title"`
	ExternalPath  string  `json:"externalPath"`
	LocationsText string  `json:"locationsText"`
	PostedOn      string  `json:"postedOn"`
}
