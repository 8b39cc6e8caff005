package pager

import (
	"context"
	"sync"
	"time"
)

// SearchFunc runs one search query.
type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// Searcher is search-as-you-type: each keystroke schedules a search
// after a quiet period and cancels the pending one, so only the last
// keystroke's query reaches the network. An empty query short-circuits
// to an empty result set without a network call.
type Searcher[T any] struct {
	mu       sync.Mutex
	search   SearchFunc[T]
	debounce *Debouncer
	results  []T
	lastErr  error
	seq      int
	onUpdate func([]T)
}

// NewSearcher builds a searcher. delay is the quiet period; onUpdate, if
// non-nil, is invoked with the results of every applied search.
func NewSearcher[T any](search SearchFunc[T], delay time.Duration, onUpdate func([]T)) *Searcher[T] {
	return &Searcher[T]{
		search:   search,
		debounce: NewDebouncer(delay),
		onUpdate: onUpdate,
	}
}

// SetQuery registers a keystroke. The search fires after the quiet
// period unless another keystroke replaces it first. A search that
// resolves after a newer keystroke is discarded as stale.
func (s *Searcher[T]) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if query == "" {
		s.debounce.Cancel()
		s.apply(seq, nil, nil)
		return
	}

	s.debounce.Schedule(func() {
		if ctx.Err() != nil {
			return
		}
		results, err := s.search(ctx, query)
		s.apply(seq, results, err)
	})
}

func (s *Searcher[T]) apply(seq int, results []T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// A newer keystroke owns the state now.
		return
	}
	if err != nil {
		s.lastErr = err
		return
	}
	s.results = results
	s.lastErr = nil
	if s.onUpdate != nil {
		s.onUpdate(append([]T(nil), results...))
	}
}

// Results returns a copy of the latest applied results.
func (s *Searcher[T]) Results() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.results...)
}

// Err returns the error from the latest search, nil when it succeeded.
func (s *Searcher[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close cancels any pending search.
func (s *Searcher[T]) Close() {
	s.debounce.Cancel()
}
