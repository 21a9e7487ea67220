// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/job-search/pkg/types"
)

// FilterTitles returns the titles that contain searchText, ignoring case,
// in their original order. An empty searchText returns titles unchanged.
func FilterTitles(titles []string, searchText string) []string {
	if searchText == "" {
		return titles
	}
	m := newTitleMatcher(searchText)
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if m.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterPostings is FilterTitles applied to posting titles.
func FilterPostings(postings []types.JobPosting, searchText string) []types.JobPosting {
	if searchText == "" {
		return postings
	}
	m := newTitleMatcher(searchText)
	out := make([]types.JobPosting, 0, len(postings))
	for _, p := range postings {
		if m.match(p.Title) {
			out = append(out, p)
		}
	}
	return out
}

type titleMatcher struct {
	lower  cases.Caser
	needle string
}

func newTitleMatcher(searchText string) titleMatcher {
	lower := cases.Lower(language.Und)
	return titleMatcher{lower: lower, needle: lower.String(searchText)}
}

func (m titleMatcher) match(title string) bool {
	return strings.Contains(m.lower.String(title), m.needle)
}
