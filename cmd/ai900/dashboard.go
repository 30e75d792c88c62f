package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/timothywarner/ai900/internal/transport/chi"
	dashboarduc "github.com/timothywarner/ai900/internal/usecase/dashboard"
	healthuc "github.com/timothywarner/ai900/internal/usecase/health"
	"github.com/timothywarner/ai900/internal/version"
)

func newDashboardCommand(a *app) *cobra.Command {
	var port int
	var origins []string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the assistant usage metrics dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				a.cfg.HTTP.Port = port
			}
			return a.serveDashboard(cmd.Context(), origins)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default http.port)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins for /api (default any)")
	return cmd
}

func (a *app) serveDashboard(ctx context.Context, origins []string) error {
	logger := a.logger
	logger.Info("Starting dashboard server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", a.cfg.HTTP.Port),
		zap.Bool("cache", a.cfg.Cache.Enabled),
	)

	if a.cfg.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN is not set; the dashboard will ask visitors to configure it")
	}
	gh, err := a.githubClient()
	if err != nil {
		return err
	}

	store, err := a.openCache(ctx)
	if err != nil {
		return err
	}

	opts := []dashboarduc.Option{}
	// Pass a nil interface (not a typed nil pointer) to the health service when the cache is off.
	var cachePinger healthuc.CachePinger
	if store != nil {
		defer store.Close()
		ttl := time.Duration(a.cfg.GitHub.CacheTTLSec) * time.Second
		opts = append(opts, dashboarduc.WithCache(store, a.cfg.GitHub.Token, ttl))
		cachePinger = store
	}

	dashSvc := dashboarduc.New(gh, logger, opts...)
	healthSvc := healthuc.New(cachePinger, healthuc.Upstream{Name: "github", Checker: gh})

	server := chiTransport.NewServer(dashSvc, healthSvc, logger)
	handler := server.Router(chiTransport.RouterConfig{
		APIKeys:        a.cfg.Auth.APIKeys,
		AllowedOrigins: origins,
	})

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	a.out.Success("Dashboard running at http://localhost%s (Ctrl+C to stop)", addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
