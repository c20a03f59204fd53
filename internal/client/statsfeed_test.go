package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nbadfs/ingestion/internal/gameday"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL, "test-key", 5*time.Second)
	c.retryDelay = time.Millisecond
	return c
}

func TestFetchSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule/2016", r.URL.Path, "Should request the season schedule path")
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"), "Should send the API key header")

		w.Write([]byte(`[
			{"home_team_name": "Cleveland Cavaliers", "away_team_name": "New York Knicks", "start_time": "2016-10-26T00:00:00Z"}
		]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	events, err := c.FetchSchedule(context.Background(), 2016)
	require.NoError(t, err, "Should fetch schedule")
	require.Len(t, events, 1, "Should decode one event")
	assert.Equal(t, "Cleveland Cavaliers", events[0].HomeTeamName)
	assert.Equal(t, time.Date(2016, 10, 26, 0, 0, 0, 0, time.UTC), events[0].StartTime.UTC())
}

func TestFetchBoxScores_DayPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boxscores/2017-01-15", r.URL.Path, "Day should format as YYYY-MM-DD in the path")
		w.Write([]byte(`[{"first_name": "LeBron", "last_name": "James", "team": "CLE", "opponent": "NOP", "points": 26}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	lines, err := c.FetchBoxScores(context.Background(), gameday.New(2017, time.January, 15))
	require.NoError(t, err, "Should fetch box scores")
	require.Len(t, lines, 1, "Should decode one stat line")
	assert.Equal(t, "LeBron", lines[0].FirstName)
	assert.Equal(t, 26, lines[0].Points)
}

func TestGet_RetriesRetryableStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchPlayerSeasons(context.Background(), 2016)
	require.NoError(t, err, "Should recover after retryable failures")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "Should retry until success")
}

func TestGet_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchPlayerSeasons(context.Background(), 2016)
	require.Error(t, err, "Should fail after exhausting retries")
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "Should attempt once plus three retries")
}

func TestGet_AuthFailureIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchSchedule(context.Background(), 2016)
	require.Error(t, err, "Should surface authentication failures")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "Auth failures should not be retried")
}
