// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the job-search workflow:
// the validated search configuration, job postings returned by the API, and
// the outcome of a run.
package types

import "time"

// JobPosting is one listing returned by the search API. Only Title takes part
// in filtering; the remaining fields are carried into result files.
type JobPosting struct {
	// Title is the job title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// ExternalPath is the site-relative path of the posting page.
	ExternalPath string `json:"external_path,omitempty" yaml:"external_path,omitempty"`

	// LocationsText is the human-readable location summary.
	LocationsText string `json:"locations_text,omitempty" yaml:"locations_text,omitempty"`

	// PostedOn is the relative posting date (e.g. "Posted 3 Days Ago").
	PostedOn string `json:"posted_on,omitempty" yaml:"posted_on,omitempty"`
}

// RunResult is the outcome of one search run.
type RunResult struct {
	// ID uniquely identifies the run.
	ID string `json:"id" yaml:"id"`

	// StartedAt is when the first page was requested.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Config is the configuration the run used.
	Config SearchConfig `json:"config" yaml:"config"`

	// All holds every posting with a title, in API order.
	All []JobPosting `json:"all" yaml:"all"`

	// Matched holds the postings whose titles contain the search text.
	Matched []JobPosting `json:"matched" yaml:"matched"`
}

// Titles returns the titles of postings in order.
func Titles(postings []JobPosting) []string {
	titles := make([]string, len(postings))
	for i, p := range postings {
		titles[i] = p.Title
	}
	return titles
}
