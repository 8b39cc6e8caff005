package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetch serves totalPages pages of pageSize sequential ints.
func pagedFetch(totalPages int, calls *int32, delay time.Duration) FetchFunc[int] {
	return func(ctx context.Context, page, pageSize int) ([]int, bool, error) {
		atomic.AddInt32(calls, 1)
		if delay > 0 {
			time.Sleep(delay)
		}
		items := make([]int, pageSize)
		for i := range items {
			items[i] = (page-1)*pageSize + i
		}
		return items, page < totalPages, nil
	}
}

func TestLoadInitialThenLoadMore(t *testing.T) {
	var calls int32
	p := New(pagedFetch(3, &calls, 0), 5)

	require.NoError(t, p.LoadInitial(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Items())
	assert.Equal(t, 1, p.Page())
	assert.True(t, p.HasMore())

	require.NoError(t, p.LoadMore(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))
	assert.Equal(t, 3, p.Page())
	assert.False(t, p.HasMore())
	assert.Len(t, p.Items(), 15)

	// No duplicates: each item appears exactly once.
	seen := map[int]bool{}
	for _, v := range p.Items() {
		assert.False(t, seen[v], "item %d fetched twice", v)
		seen[v] = true
	}
}

func TestLoadInitialRunsOncePerOpen(t *testing.T) {
	var calls int32
	p := New(pagedFetch(2, &calls, 0), 3)

	require.NoError(t, p.LoadInitial(context.Background()))
	require.NoError(t, p.LoadInitial(context.Background()))
	require.NoError(t, p.LoadInitial(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Reset re-arms the initial load.
	p.Reset()
	assert.Empty(t, p.Items())
	require.NoError(t, p.LoadInitial(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoadInitialErrorRearms(t *testing.T) {
	var calls int32
	p := New(func(ctx context.Context, page, pageSize int) ([]int, bool, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, false, errors.New("network down")
		}
		return []int{1}, false, nil
	}, 3)

	require.Error(t, p.LoadInitial(context.Background()))
	require.NoError(t, p.LoadInitial(context.Background()), "a failed open can be retried")
	assert.Equal(t, []int{1}, p.Items())
}

func TestLoadMoreBeforeOpenIsNoop(t *testing.T) {
	var calls int32
	p := New(pagedFetch(2, &calls, 0), 3)

	require.NoError(t, p.LoadMore(context.Background()))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Empty(t, p.Items())
}

func TestLoadMoreWhenExhaustedIsNoop(t *testing.T) {
	var calls int32
	p := New(pagedFetch(1, &calls, 0), 3)

	require.NoError(t, p.LoadInitial(context.Background()))
	assert.False(t, p.HasMore())

	require.NoError(t, p.OnVisible(context.Background()))
	require.NoError(t, p.OnVisible(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exhausted listings must not refetch")
}

func TestConcurrentLoadMoreFetchesOnce(t *testing.T) {
	var calls int32
	p := New(pagedFetch(5, &calls, 20*time.Millisecond), 2)
	require.NoError(t, p.LoadInitial(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.LoadMore(context.Background())
		}()
	}
	wg.Wait()

	// Initial plus exactly one LoadMore: the in-flight guard swallows
	// the other nine triggers.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, p.Page())
}

func TestLoadMoreErrorKeepsPage(t *testing.T) {
	var calls int32
	p := New(func(ctx context.Context, page, pageSize int) ([]int, bool, error) {
		atomic.AddInt32(&calls, 1)
		if page == 2 {
			return nil, false, fmt.Errorf("page %d failed", page)
		}
		return []int{page}, true, nil
	}, 1)

	require.NoError(t, p.LoadInitial(context.Background()))
	require.Error(t, p.LoadMore(context.Background()))

	assert.Equal(t, 1, p.Page(), "failed page must not advance the cursor")
	assert.True(t, p.HasMore())
	assert.Equal(t, []int{1}, p.Items())

	// The same page is retried on the next trigger.
	require.Error(t, p.LoadMore(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
