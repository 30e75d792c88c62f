package main

import (
	"context"
	"errors"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	openaiTransport "github.com/timothywarner/ai900/internal/transport/openai"
	healthuc "github.com/timothywarner/ai900/internal/usecase/health"
)

var errUnhealthy = errors.New("one or more services are unavailable")

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the configured services before a demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.checkHealth(a.demoContext(cmd.Context(), "health"))
		},
	}
}

func (a *app) checkHealth(ctx context.Context) error {
	a.out.Header("Service Health")

	var upstreams []healthuc.Upstream
	if err := a.cfg.RequireOpenAI(); err == nil {
		cfg := a.openAIConfig()
		upstreams = append(upstreams, healthuc.Upstream{Name: "openai", Checker: openaiTransport.NewClient(&cfg)})
	} else {
		a.out.Muted("openai: not configured")
	}

	if a.cfg.GitHub.Token != "" {
		gh, err := a.githubClient()
		if err != nil {
			return err
		}
		upstreams = append(upstreams, healthuc.Upstream{Name: "github", Checker: gh})
	} else {
		a.out.Muted("github: not configured")
	}

	var cache healthuc.CachePinger
	cacheFailed := false
	store, err := a.openCache(ctx)
	switch {
	case err != nil:
		a.logger.Warn("Cache unavailable", zap.Error(err))
		cacheFailed = true
	case store != nil:
		defer store.Close()
		cache = store
	default:
		a.out.Muted("cache: disabled")
	}

	report := healthuc.New(cache, upstreams...).Check(ctx)
	if cacheFailed {
		report.Checks["cache"] = healthuc.CheckError
		report.Status = healthuc.Degraded
	}

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if report.Checks[name] == healthuc.CheckOK {
			a.out.Success("%s: reachable", name)
		} else {
			a.out.Warn("%s: unavailable", name)
		}
	}

	if report.Status != healthuc.Healthy {
		return errUnhealthy
	}
	return nil
}
