// Package pager implements the incremental list loading used by the
// follower/following/likers listings: page-by-page fetching driven by a
// caller-supplied fetch function, guarded so that overlapping triggers
// cause exactly one request.
package pager

import (
	"context"
	"sync"
)

// FetchFunc fetches one page. It returns the page's items and whether
// more pages remain.
type FetchFunc[T any] func(ctx context.Context, page, pageSize int) ([]T, bool, error)

// Pager accumulates pages of T. The zero value is not usable; build one
// with New.
type Pager[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	pageSize int
	items    []T
	page     int
	hasMore  bool
	loading  bool
	opened   bool
}

// New builds a pager around a fetch function.
func New[T any](fetch FetchFunc[T], pageSize int) *Pager[T] {
	return &Pager[T]{fetch: fetch, pageSize: pageSize}
}

// LoadInitial loads page 1, replacing any items. It runs at most once
// per open lifecycle; Reset re-arms it. Calling it again before Reset is
// a no-op.
func (p *Pager[T]) LoadInitial(ctx context.Context) error {
	p.mu.Lock()
	if p.opened || p.loading {
		p.mu.Unlock()
		return nil
	}
	p.opened = true
	p.loading = true
	p.mu.Unlock()

	items, hasMore, err := p.fetch(ctx, 1, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		// Re-arm so the open can be retried.
		p.opened = false
		return err
	}
	p.items = items
	p.page = 1
	p.hasMore = hasMore
	return nil
}

// LoadMore fetches the next page and appends it. It is a no-op while a
// fetch is in flight or when the listing is exhausted, so a
// level-triggered caller (visibility checks, scroll handlers) can invoke
// it repeatedly without double-fetching.
func (p *Pager[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if !p.opened || p.loading || !p.hasMore {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	next := p.page + 1
	p.mu.Unlock()

	items, hasMore, err := p.fetch(ctx, next, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}
	p.items = append(p.items, items...)
	p.page = next
	p.hasMore = hasMore
	return nil
}

// OnVisible is the level-triggered load trigger: the host calls it every
// time the end of the list is (still) visible.
func (p *Pager[T]) OnVisible(ctx context.Context) error {
	return p.LoadMore(ctx)
}

// Reset clears all state so a reopened listing starts clean.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.page = 0
	p.hasMore = false
	p.loading = false
	p.opened = false
}

// Items returns a copy of the accumulated items.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// Page returns the last loaded page number, 0 before LoadInitial.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// HasMore reports whether pages remain.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Loading reports whether a fetch is in flight.
func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}
