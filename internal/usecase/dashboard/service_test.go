package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/db"
	"github.com/timothywarner/ai900/internal/domain"
)

// --- Mocks ---

type mockUsers struct {
	user  domain.UserProfile
	err   error
	calls int
}

func (m *mockUsers) User(_ context.Context) (domain.UserProfile, error) {
	m.calls++
	return m.user, m.err
}

type mapCache struct {
	data   map[string][]byte
	ttl    time.Duration
	getErr error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (c *mapCache) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	c.ttl = ttl
	return nil
}

// --- Tests ---

func TestMetrics_UsesUserLoginAndClock(t *testing.T) {
	users := &mockUsers{user: domain.UserProfile{Login: "octocat"}}
	now := time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc := New(users, zap.NewNop(), WithClock(func() time.Time { return now }))

	m, err := svc.Metrics(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Username != "octocat" || len(m.DailyData) != 7 || m.DailyData[0].Date != "2024-03-03" {
		t.Errorf("unexpected metrics: %s %d %s", m.Username, len(m.DailyData), m.DailyData[0].Date)
	}
}

func TestMetrics_Unauthenticated(t *testing.T) {
	svc := New(&mockUsers{err: domain.ErrUnauthenticated}, zap.NewNop())

	_, err := svc.Metrics(context.Background(), 30)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUser_CachesProfile(t *testing.T) {
	users := &mockUsers{user: domain.UserProfile{Login: "octocat", Name: "Octo"}}
	cache := newMapCache()
	svc := New(users, zap.NewNop(), WithCache(cache, "token", 5*time.Minute))

	for i := 0; i < 3; i++ {
		u, err := svc.User(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Name != "Octo" {
			t.Errorf("unexpected user: %+v", u)
		}
	}

	if users.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", users.calls)
	}
	if cache.ttl != 5*time.Minute {
		t.Errorf("unexpected ttl: %v", cache.ttl)
	}
	for key := range cache.data {
		if key == userCachePrefix+"token" {
			t.Error("cache key must not contain the raw token")
		}
	}
}

func TestUser_CacheFailureFallsBack(t *testing.T) {
	users := &mockUsers{user: domain.UserProfile{Login: "octocat"}}
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	svc := New(users, zap.NewNop(), WithCache(cache, "token", time.Minute))

	u, err := svc.User(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Login != "octocat" || users.calls != 1 {
		t.Errorf("expected upstream lookup, got %+v after %d calls", u, users.calls)
	}
}

func TestUser_CorruptCacheEntry(t *testing.T) {
	users := &mockUsers{user: domain.UserProfile{Login: "octocat"}}
	cache := newMapCache()
	svc := New(users, zap.NewNop(), WithCache(cache, "token", time.Minute))
	cache.data[svc.cacheKey] = []byte("{not json")

	u, err := svc.User(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Login != "octocat" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestUser_ErrorsAreNotCached(t *testing.T) {
	users := &mockUsers{err: domain.ErrUnauthenticated}
	cache := newMapCache()
	svc := New(users, zap.NewNop(), WithCache(cache, "token", time.Minute))

	_, _ = svc.User(context.Background())
	if len(cache.data) != 0 {
		t.Errorf("expected empty cache, got %d entries", len(cache.data))
	}
}
