package health

import "context"

// CachePinger checks cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker checks a remote API a command depends on.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
