package querycache

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
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counter(calls *int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestFetch_CachesUntilInvalidated(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()
	key := NewKey("user-1", "projects")

	var calls int32
	v, err := Fetch(ctx, c, key, counter(&calls, "first"))
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	v, err = Fetch(ctx, c, key, counter(&calls, "second"))
	require.NoError(t, err)
	assert.Equal(t, "first", v, "served from cache")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	c.Invalidate("projects")

	v, err = Fetch(ctx, c, key, counter(&calls, "third"))
	require.NoError(t, err)
	assert.Equal(t, "third", v)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()
	key := NewKey("", "parties")

	_, err := Fetch(ctx, c, key, func(context.Context) ([]string, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Stats().Entries)

	v, err := Fetch(ctx, c, key, func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)
}

func TestFetch_ScopesAreSeparate(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()

	var calls int32
	_, err := Fetch(ctx, c, NewKey("alice", "projects"), counter(&calls, "a"))
	require.NoError(t, err)
	v, err := Fetch(ctx, c, NewKey("bob", "projects"), counter(&calls, "b"))
	require.NoError(t, err)

	assert.Equal(t, "b", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidate_PrefixAcrossScopes(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()

	var calls int32
	for _, k := range []Key{
		NewKey("alice", "projects"),
		NewKey("alice", "projects", "1"),
		NewKey("bob", "projects", "2"),
		NewKey("alice", "parties"),
		NewKey("alice", "project_status"),
	} {
		_, err := Fetch(ctx, c, k, counter(&calls, "x"))
		require.NoError(t, err)
	}

	removed := c.Invalidate("projects")
	assert.Equal(t, 3, removed)
	assert.Equal(t, 2, c.Stats().Entries)

	removed = c.Invalidate("projects", "1")
	assert.Equal(t, 0, removed)
}

func TestFetch_ConcurrentCallsShareOneLoad(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()
	key := NewKey("", "projects")

	release := make(chan struct{})
	var calls int32
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(ctx, c, key, load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New(time.Minute, nil)
	key := NewKey("", "projects")

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	var loadErr atomic.Value
	load := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		loadErr.Store(fmt.Sprint(ctx.Err()))
		return "rows", nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(first, c, key, load)
		firstErr <- err
	}()
	<-started

	second := make(chan string, 1)
	go func() {
		v, err := Fetch(context.Background(), c, key, load)
		assert.NoError(t, err)
		second <- v
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Equal(t, "rows", <-second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "<nil>", loadErr.Load(), "load must not see the first caller's cancellation")

	v, err := Fetch(context.Background(), c, key, load)
	require.NoError(t, err)
	assert.Equal(t, "rows", v, "result was cached")
}

func TestFetch_InvalidationDuringLoadDiscardsResult(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()
	key := NewKey("", "projects")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)

	go func() {
		v, _ := Fetch(ctx, c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate("projects")
	close(release)
	assert.Equal(t, "stale", <-done, "the in-flight caller still gets its own result")

	v, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestFetch_ExpiryAndSweep(t *testing.T) {
	c := New(time.Second, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	var calls int32
	_, err := Fetch(ctx, c, NewKey("", "projects"), counter(&calls, "a"))
	require.NoError(t, err)
	_, err = Fetch(ctx, c, NewKey("", "parties"), counter(&calls, "b"))
	require.NoError(t, err)

	now = now.Add(2 * time.Second)

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 0, c.Stats().Entries)

	_, err = Fetch(ctx, c, NewKey("", "projects"), counter(&calls, "c"))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_TypeMismatch(t *testing.T) {
	c := New(time.Minute, nil)
	ctx := context.Background()
	key := NewKey("", "projects")

	_, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "s", nil })
	require.NoError(t, err)

	// A reader that expects another type misses and reloads rather than panicking.
	v, err := Fetch(ctx, c, key, func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestKey_HasPrefix(t *testing.T) {
	k := NewKey("s", "projects", "7")
	assert.True(t, k.HasPrefix(nil))
	assert.True(t, k.HasPrefix([]string{"projects"}))
	assert.True(t, k.HasPrefix([]string{"projects", "7"}))
	assert.False(t, k.HasPrefix([]string{"projects", "8"}))
	assert.False(t, k.HasPrefix([]string{"projects", "7", "x"}))
	assert.NotEqual(t, NewKey("a", "b").String(), NewKey("", "a", "b").String())
}
