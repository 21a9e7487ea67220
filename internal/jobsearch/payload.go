// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobsearch

import (
	"encoding/json"
	"fmt"
)

// searchPayload is the request body the Workday jobs endpoint expects.
// Field order matches the API's own requests.
type searchPayload struct {
	AppliedFacets appliedFacets `json:"appliedFacets"`
	Limit         int           `json:"limit"`
	Offset        int           `json:"offset"`
	SearchText    string        `json:"searchText"`
}

type appliedFacets struct {
	Locations []string `json:"locations"`
}

// BuildPayload serializes one page request:
//
//	{"appliedFacets":{"locations":[...]},"limit":N,"offset":N,"searchText":"..."}
//
// Nil locations produce an empty array.
func BuildPayload(searchText string, locations []string, pageSize, offset int) ([]byte, error) {
	if locations == nil {
		locations = []string{}
	}
	p := searchPayload{
		AppliedFacets: appliedFacets{Locations: locations},
		Limit:         pageSize,
		Offset:        offset,
		SearchText:    searchText,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding search payload: %w", err)
	}
	return data, nil
}
