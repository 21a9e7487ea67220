// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsHeadersAndBody(t *testing.T) {
	var gotMethod, gotType, gotAgent, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotAgent = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true}`)
	}))
	defer ts.Close()

	data, err := PostJSON(context.Background(), ts.Client(), ts.URL, []byte(`{"limit":20}`), "test/0.1")
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, string(data))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "test/0.1", gotAgent)
	assert.Equal(t, `{"limit":20}`, gotBody)
}

func TestPostJSON_NoUserAgentKeepsClientDefault(t *testing.T) {
	var gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	_, err := PostJSON(context.Background(), ts.Client(), ts.URL, []byte(`{}`), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotAgent, "Go-http-client"), "got %q", gotAgent)
}

func TestPostJSON_StatusError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, "slow down")
	}))
	defer ts.Close()

	_, err := PostJSON(context.Background(), ts.Client(), ts.URL, []byte(`{}`), "")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "slow down", se.Body)
	assert.Equal(t, "HTTP 429: slow down", se.Error())
	// Sent once, never retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPostJSON_TruncatesLongErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, strings.Repeat("x", 2000))
	}))
	defer ts.Close()

	_, err := PostJSON(context.Background(), ts.Client(), ts.URL, []byte(`{}`), "")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Body, maxErrorBody)
}

func TestPostJSON_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := PostJSON(ctx, ts.Client(), ts.URL, []byte(`{}`), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPostJSON_InvalidURL(t *testing.T) {
	_, err := PostJSON(context.Background(), http.DefaultClient, "://bad", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating request")
}
