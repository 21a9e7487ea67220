// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/job-search/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string, started time.Time, matched ...string) types.RunResult {
	r := types.RunResult{
		ID:        id,
		StartedAt: started,
		Config: types.SearchConfig{
			Endpoint:   "https://example.wd5.myworkdayjobs.com/wday/cxs/example/Careers/jobs",
			SearchText: "Security",
			Locations:  []string{"loc-a", "loc-b"},
			PageSize:   20,
		},
		All: []types.JobPosting{{Title: "Backend Developer"}},
	}
	for i, title := range matched {
		p := types.JobPosting{Title: title, ExternalPath: "/job/" + title}
		if i%2 == 1 {
			p.ExternalPath = ""
		}
		r.All = append(r.All, p)
		r.Matched = append(r.Matched, p)
	}
	return r
}

func TestRecordAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	started := time.Date(2026, 5, 1, 8, 30, 0, 123, time.UTC)

	id, err := s.Record(ctx, testRun("run-1", started, "Security Analyst", "Security Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)

	run, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, started.Equal(run.StartedAt))
	assert.Equal(t, "Security", run.SearchText)
	assert.Equal(t, []string{"loc-a", "loc-b"}, run.Locations)
	assert.Equal(t, 20, run.PageSize)
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, 2, run.Matched)

	titles, err := s.Titles(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []types.JobPosting{
		{Title: "Security Analyst", ExternalPath: "/job/Security Analyst"},
		{Title: "Security Engineer"},
	}, titles)
}

func TestRecordAssignsID(t *testing.T) {
	s := testStore(t)
	id, err := s.Record(context.Background(), testRun("", time.Now()))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRecordDuplicateIDFails(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, testRun("dup", time.Now(), "A"))
	require.NoError(t, err)

	_, err = s.Record(ctx, testRun("dup", time.Now(), "B", "C"))
	require.Error(t, err)

	// The failed transaction left the first run untouched.
	titles, err := s.Titles(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, titles, 1)
}

func TestRecordNilLocations(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	r := testRun("no-locs", time.Now())
	r.Config.Locations = nil
	_, err := s.Record(ctx, r)
	require.NoError(t, err)

	run, err := s.Get(ctx, "no-locs")
	require.NoError(t, err)
	assert.Nil(t, run.Locations)
}

func TestListMostRecentFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"b", "c", "a"} {
		_, err := s.Record(ctx, testRun(id, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "c", runs[1].ID)
	assert.Equal(t, "b", runs[2].ID)

	runs, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListEmpty(t *testing.T) {
	runs, err := testStore(t).List(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, runs)
	assert.Empty(t, runs)

	data, err := json.Marshal(runs)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestGetMissingRun(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.Titles(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	_, err = s.Record(context.Background(), testRun("kept", time.Now(), "A"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()
	run, err := s.Get(context.Background(), "kept")
	require.NoError(t, err)
	assert.Equal(t, 1, run.Matched)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(types.HistoryConfig{})
	assert.Error(t, err)
}
