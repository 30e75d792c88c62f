package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp time.Time              `json:"timestamp"`
}

// Upstream is a named remote dependency.
type Upstream struct {
	Name    string
	Checker UpstreamChecker
}

// Service coordinates health checks.
type Service struct {
	upstreams []Upstream
	cache     CachePinger
	now       func() time.Time
}

// New creates a Service. A nil cache or upstream checker is left out of the report.
func New(cache CachePinger, upstreams ...Upstream) *Service {
	return &Service{upstreams: upstreams, cache: cache, now: time.Now}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	for _, u := range s.upstreams {
		if u.Checker != nil {
			checks[u.Name] = result(u.Checker.HealthCheck(ctx))
		}
	}
	if s.cache != nil {
		checks["cache"] = result(s.cache.Ping(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Timestamp: s.now().UTC()}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
