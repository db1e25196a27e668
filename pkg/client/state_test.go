package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/recipebook/internal/types"
)

// recordingServer serves empty pages while capturing each request's query
// string. An optional delay function can slow chosen requests down to
// provoke out-of-order responses.
type recordingServer struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []string

	delayFor func(q string) time.Duration
}

func newRecordingServer(t *testing.T) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.RawQuery
		rs.mu.Lock()
		rs.requests = append(rs.requests, raw)
		delay := rs.delayFor
		rs.mu.Unlock()

		if delay != nil {
			time.Sleep(delay(raw))
		}

		page := types.NewPage(nil, types.ParseListQuery(r.URL.Query()), 0)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(rs.srv.Close)
	return rs
}

func (rs *recordingServer) seen() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.requests...)
}

// resultCollector gathers delivered results for later assertions.
type resultCollector struct {
	mu      sync.Mutex
	queries []types.ListQuery
	errs    []error
}

func (rc *resultCollector) fn() ResultFunc {
	return func(q types.ListQuery, _ *types.Page, err error) {
		rc.mu.Lock()
		defer rc.mu.Unlock()
		rc.queries = append(rc.queries, q)
		rc.errs = append(rc.errs, err)
	}
}

func (rc *resultCollector) delivered() []types.ListQuery {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]types.ListQuery(nil), rc.queries...)
}

func TestSearchDebounceCollapsesKeystrokes(t *testing.T) {
	rs := newRecordingServer(t)
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn(), WithDebounce(40*time.Millisecond))

	for _, keystroke := range []string{"c", "ch", "chi", "chic", "chicken"} {
		state.SetSearch(keystroke)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	requests := rs.seen()
	require.Len(t, requests, 1, "five keystrokes inside the quiet period must cost one request")
	assert.Contains(t, requests[0], "search=chicken")

	assert.Equal(t, "chicken", state.Query().Search)
	assert.Equal(t, 1, state.Query().Page)
}

func TestSearchCommitsAfterQuietPeriod(t *testing.T) {
	rs := newRecordingServer(t)
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn(), WithDebounce(30*time.Millisecond))

	state.SetSearch("tart")
	time.Sleep(100 * time.Millisecond)
	state.SetSearch("tarte")
	time.Sleep(100 * time.Millisecond)

	// Two stable values, two commits.
	assert.Len(t, rs.seen(), 2)
	assert.Equal(t, "tarte", state.Query().Search)
}

func TestFilterChangeResetsPage(t *testing.T) {
	rs := newRecordingServer(t)
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn(), WithDebounce(10*time.Millisecond))

	state.SetPage(5)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 5, state.Query().Page)

	state.SetDifficulty("hard")
	time.Sleep(50 * time.Millisecond)

	q := state.Query()
	assert.Equal(t, "hard", q.Difficulty)
	assert.Equal(t, 1, q.Page, "changing a filter on page 5 must go back to page 1")
}

func TestPageChangeKeepsFilters(t *testing.T) {
	rs := newRecordingServer(t)
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn(), WithDebounce(10*time.Millisecond))

	state.SetCategory("Dessert")
	time.Sleep(50 * time.Millisecond)
	state.SetPage(3)
	time.Sleep(50 * time.Millisecond)

	q := state.Query()
	assert.Equal(t, "Dessert", q.Category)
	assert.Equal(t, 3, q.Page)
}

func TestResetIsOneTransitionOneFetch(t *testing.T) {
	rs := newRecordingServer(t)
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn(), WithDebounce(200*time.Millisecond))

	state.SetCategory("Meat")
	time.Sleep(50 * time.Millisecond)
	state.SetSort("title", "asc")
	time.Sleep(50 * time.Millisecond)
	before := len(rs.seen())

	state.SetSearch("pending") // left uncommitted on purpose
	state.Reset()
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, before+1, len(rs.seen()), "reset must produce exactly one refetch and cancel the pending search")
	assert.Equal(t, types.DefaultListQuery(), state.Query())
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	rs := newRecordingServer(t)
	rs.delayFor = func(q string) time.Duration {
		if q == "category=slow" {
			return 120 * time.Millisecond
		}
		return 0
	}
	rc := &resultCollector{}
	state := NewListState(New(rs.srv.URL), rc.fn())

	state.SetCategory("slow")
	time.Sleep(10 * time.Millisecond)
	state.SetCategory("fast")

	time.Sleep(300 * time.Millisecond)

	// Both requests went out, but the slow response came back after it was
	// superseded and must not have been delivered.
	assert.Len(t, rs.seen(), 2)
	delivered := rc.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, "fast", delivered[0].Category)
	assert.Equal(t, "fast", state.Query().Category)
}

func TestFetchErrorLeavesStateIntact(t *testing.T) {
	rc := &resultCollector{}
	// Nothing listens on this address.
	state := NewListState(New("http://127.0.0.1:1"), rc.fn(), WithDebounce(10*time.Millisecond))

	state.SetCategory("Meat")
	time.Sleep(100 * time.Millisecond)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	require.Len(t, rc.errs, 1)
	assert.Error(t, rc.errs[0])
	assert.Equal(t, "Meat", state.Query().Category)
}
