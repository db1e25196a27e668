package client

import (
	"context"
	"sync"
	"time"

	"github.com/plateful/recipebook/internal/types"
)

// DefaultDebounce is the quiet period a search input must hold before the
// value is committed and fetched.
const DefaultDebounce = 500 * time.Millisecond

// ResultFunc receives the outcome of a fetch together with the query that
// produced it. It is never called for a fetch that has been superseded.
type ResultFunc func(q types.ListQuery, page *types.Page, err error)

// ListState keeps a listing view's filter/sort/page parameters and the one
// in-flight fetch consistent. State transitions build a fresh ListQuery value
// rather than mutating shared state, and every fetch carries a generation
// number; a response whose generation is no longer the latest is dropped, so
// a slow early response can never overwrite a faster later one. Failed
// fetches report the error and leave the committed query as-is; there are no
// retries.
type ListState struct {
	client   *Client
	onResult ResultFunc
	debounce time.Duration

	mu         sync.Mutex
	query      types.ListQuery
	timer      *time.Timer
	generation uint64
}

// StateOption customizes a ListState.
type StateOption func(*ListState)

// WithDebounce overrides the search quiet period, mainly for tests.
func WithDebounce(d time.Duration) StateOption {
	return func(s *ListState) { s.debounce = d }
}

// NewListState creates a ListState at the default query. Nothing is fetched
// until the first transition (or an explicit Refresh).
func NewListState(c *Client, onResult ResultFunc, opts ...StateOption) *ListState {
	s := &ListState{
		client:   c,
		onResult: onResult,
		debounce: DefaultDebounce,
		query:    types.DefaultListQuery(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query returns the committed query value.
func (s *ListState) Query() types.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetSearch records a keystroke. The value only commits once it has been
// stable for the quiet period; every call inside that window restarts the
// timer, so rapid typing costs one request, not one per keystroke.
func (s *ListState) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		q := s.query
		q.Search = search
		q.Page = 1
		s.applyLocked(q)
	})
}

// SetCategory refetches immediately with the page reset to 1.
func (s *ListState) SetCategory(category string) {
	s.transition(func(q *types.ListQuery) {
		q.Category = category
		q.Page = 1
	})
}

// SetDifficulty refetches immediately with the page reset to 1.
func (s *ListState) SetDifficulty(difficulty string) {
	s.transition(func(q *types.ListQuery) {
		q.Difficulty = difficulty
		q.Page = 1
	})
}

// SetSort refetches immediately with the page reset to 1. Values outside the
// server's allow-list are fine: the server normalizes them to defaults.
func (s *ListState) SetSort(sortBy, sortOrder string) {
	s.transition(func(q *types.ListQuery) {
		q.SortBy = sortBy
		q.SortOrder = sortOrder
		q.Page = 1
	})
}

// SetPerPage refetches immediately with the page reset to 1.
func (s *ListState) SetPerPage(perPage int) {
	s.transition(func(q *types.ListQuery) {
		q.PerPage = perPage
		q.Page = 1
	})
}

// SetPage moves the page window, leaving every filter in place.
func (s *ListState) SetPage(page int) {
	s.transition(func(q *types.ListQuery) {
		q.Page = page
	})
}

// Reset restores the defaults — no filters, created_at descending, page 1 —
// as one transition producing exactly one fetch. A pending search commit is
// cancelled.
func (s *ListState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.applyLocked(types.DefaultListQuery())
}

// Refresh refetches the committed query unchanged.
func (s *ListState) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(s.query)
}

func (s *ListState) transition(mutate func(*types.ListQuery)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.query
	mutate(&q)
	s.applyLocked(q)
}

// applyLocked commits q and launches its fetch under a new generation.
// Callers must hold s.mu.
func (s *ListState) applyLocked(q types.ListQuery) {
	s.query = q
	s.generation++
	gen := s.generation

	go func() {
		page, err := s.client.List(context.Background(), q)

		s.mu.Lock()
		stale := gen != s.generation
		s.mu.Unlock()
		if stale {
			return
		}
		if s.onResult != nil {
			s.onResult(q, page, err)
		}
	}()
}
