package platforms

import (
	"context"
	"errors"
	"testing"
	"time"

	"cptracker/internal/models"
)

func TestFetchCacheSingleFetchWithinTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewFetchCache(10 * time.Minute)
	cache.now = func() time.Time { return now }

	calls := 0
	fetch := func(ctx context.Context) (models.PlatformData, error) {
		calls++
		return models.PlatformData{TotalSolved: 42}, nil
	}

	for i := 0; i < 3; i++ {
		data, err := cache.GetOrFetch(context.Background(), models.PlatformCodeforces, "tourist", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch returned error: %v", err)
		}
		if data.TotalSolved != 42 {
			t.Fatalf("expected cached payload, got %+v", data)
		}
	}

	if calls != 1 {
		t.Fatalf("expected exactly 1 upstream fetch within TTL, got %d", calls)
	}

	// Advance past the TTL: the next call must fetch again.
	now = now.Add(10*time.Minute + time.Second)
	if _, err := cache.GetOrFetch(context.Background(), models.PlatformCodeforces, "tourist", fetch); err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a second fetch after TTL expiry, got %d calls", calls)
	}
}

func TestFetchCacheKeysByPlatformAndHandle(t *testing.T) {
	cache := NewFetchCache(10 * time.Minute)

	calls := 0
	fetch := func(ctx context.Context) (models.PlatformData, error) {
		calls++
		return models.PlatformData{}, nil
	}

	cache.GetOrFetch(context.Background(), models.PlatformCodeforces, "tourist", fetch)
	cache.GetOrFetch(context.Background(), models.PlatformLeetCode, "tourist", fetch)
	cache.GetOrFetch(context.Background(), models.PlatformCodeforces, "petr", fetch)

	if calls != 3 {
		t.Fatalf("expected distinct keys to fetch independently, got %d calls", calls)
	}
}

func TestFetchCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewFetchCache(10 * time.Minute)

	calls := 0
	failing := func(ctx context.Context) (models.PlatformData, error) {
		calls++
		return models.PlatformData{}, errors.New("upstream down")
	}

	for i := 0; i < 2; i++ {
		if _, err := cache.GetOrFetch(context.Background(), models.PlatformCodeChef, "chef", failing); err == nil {
			t.Fatal("expected fetch error to propagate")
		}
	}

	if calls != 2 {
		t.Fatalf("failed fetches must not be cached, got %d calls", calls)
	}
}
