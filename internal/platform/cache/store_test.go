package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "payload", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "fixtures?date=2024-05-01", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "payload" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_SecondCallWithinWindowSkipsLoader(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ReloadsAfterWindowAndRestampsEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return calls.Load(), nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	firstStamp, ok := store.FetchedAt("k")
	if !ok {
		t.Fatal("expected live entry after first load")
	}

	current = current.Add(5 * time.Minute)

	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got, _ := v.(int32); got != 2 {
		t.Fatalf("got stale value %v, want reloaded value 2", v)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}

	secondStamp, ok := store.FetchedAt("k")
	if !ok {
		t.Fatal("expected live entry after reload")
	}
	if !secondStamp.After(firstStamp) {
		t.Fatalf("entry timestamp not advanced: first=%v second=%v", firstStamp, secondStamp)
	}
}

func TestStore_GetOrLoad_DoesNotCacheLoaderFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	failing := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("upstream down")
	}

	if _, err := store.GetOrLoad(context.Background(), "k", failing); err == nil {
		t.Fatal("expected loader error")
	}
	if store.Len() != 0 {
		t.Fatalf("failed load left %d entries, want 0", store.Len())
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); err == nil {
		t.Fatal("expected loader error on retry")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
