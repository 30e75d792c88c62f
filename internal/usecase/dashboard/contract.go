package dashboard

import (
	"context"
	"time"

	"github.com/timothywarner/ai900/internal/domain"
)

// UserSource resolves the authenticated user.
type UserSource interface {
	User(ctx context.Context) (domain.UserProfile, error)
}

// Cache stores serialized profiles between requests.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
