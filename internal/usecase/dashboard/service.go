// Package dashboard serves assistant usage metrics for the authenticated GitHub user.
package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/db"
	"github.com/timothywarner/ai900/internal/domain"
)

const userCachePrefix = "ai900:github_user:"

// Service resolves the user and builds their metrics.
type Service struct {
	users    UserSource
	cache    Cache
	cacheKey string
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache stores the resolved profile for ttl. scope identifies the credential
// (typically the token) and is hashed into the key.
func WithCache(c Cache, scope string, ttl time.Duration) Option {
	return func(s *Service) {
		sum := sha256.Sum256([]byte(scope))
		s.cache = c
		s.cacheKey = userCachePrefix + hex.EncodeToString(sum[:8])
		s.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a dashboard service.
func New(users UserSource, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{users: users, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// User returns the authenticated profile. ErrUnauthenticated when there is none.
func (s *Service) User(ctx context.Context) (domain.UserProfile, error) {
	if user, ok := s.cached(ctx); ok {
		return user, nil
	}

	user, err := s.users.User(ctx)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("resolve user: %w", err)
	}

	s.store(ctx, user)
	return user, nil
}

// Metrics returns the usage metrics of the authenticated user for the last days days.
func (s *Service) Metrics(ctx context.Context, days int) (Metrics, error) {
	user, err := s.User(ctx)
	if err != nil {
		return Metrics{}, err
	}
	return SampleMetrics(user.Login, days, s.now()), nil
}

func (s *Service) cached(ctx context.Context) (domain.UserProfile, bool) {
	if s.cache == nil {
		return domain.UserProfile{}, false
	}
	data, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("User cache read failed", zap.Error(err))
		}
		return domain.UserProfile{}, false
	}
	var user domain.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("User cache entry is corrupt", zap.Error(err))
		return domain.UserProfile{}, false
	}
	return user, true
}

func (s *Service) store(ctx context.Context, user domain.UserProfile) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, s.cacheKey, data, s.ttl); err != nil {
		s.logger.Warn("User cache write failed", zap.Error(err))
	}
}
