package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/db"
	dbRedis "github.com/timothywarner/ai900/internal/db/redis"
	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
	"github.com/timothywarner/ai900/internal/repository/embcache"
	"github.com/timothywarner/ai900/internal/transport/azure"
	"github.com/timothywarner/ai900/internal/transport/github"
	openaiTransport "github.com/timothywarner/ai900/internal/transport/openai"
	embeddinguc "github.com/timothywarner/ai900/internal/usecase/embedding"
)

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: time.Duration(a.cfg.HTTP.ClientTimeout) * time.Second}
}

func (a *app) openAIConfig() openaiTransport.Config {
	c := a.cfg.OpenAI
	return openaiTransport.Config{
		APIType:         c.APIType,
		BaseURL:         c.Endpoint,
		APIKey:          c.APIKey,
		APIVersion:      c.APIVersion,
		ChatModel:       c.Deployment,
		CompletionModel: c.CompletionModel,
		ImageModel:      c.ImageModel,
		HTTPClient:      a.httpClient(),
		Logger:          a.logger,
	}
}

// openAIClient checks the credentials and builds the chat/completion/image client.
func (a *app) openAIClient() (*openaiTransport.Client, error) {
	if err := a.cfg.RequireOpenAI(); err != nil {
		return nil, err
	}
	cfg := a.openAIConfig()
	return openaiTransport.NewClient(&cfg), nil
}

func (a *app) githubClient() (*github.Client, error) {
	return github.NewClient(github.Config{
		BaseURL:    a.cfg.GitHub.APIURL,
		Token:      a.cfg.GitHub.Token,
		HTTPClient: a.httpClient(),
		Logger:     a.logger,
	})
}

func (a *app) azureConfig(endpoint, key string) azure.Config {
	return azure.Config{
		Endpoint:   endpoint,
		Key:        key,
		HTTPClient: a.httpClient(),
		Logger:     a.logger,
	}
}

// openCache connects to Redis when the cache is enabled.
// Returns a nil interface (not a typed nil pointer) when disabled, so callers can test store != nil.
func (a *app) openCache(ctx context.Context) (db.Store, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Cache.Addrs,
		Password: a.cfg.Cache.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}

	timeout := time.Duration(a.cfg.Cache.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	a.logger.Info("Connected to cache", zap.Strings("addrs", a.cfg.Cache.Addrs))
	return store, nil
}

// buildEmbedder assembles the decorator chain: provider -> cached -> instrumented.
func (a *app) buildEmbedder(store db.KVStore) domain.Embedder {
	var (
		base     domain.Embedder
		provider string
		model    string
	)
	switch a.cfg.Embedding.Provider {
	case "openai":
		cfg := openaiTransport.EmbedderConfig{
			Config: a.openAIConfig(),
			Model:  a.cfg.OpenAI.EmbeddingDeployment,
		}
		base = openaiTransport.NewEmbedder(&cfg)
		provider, model = "openai_embedding", a.cfg.OpenAI.EmbeddingDeployment
	default:
		base = embeddinguc.NewHashEmbedder(a.cfg.Embedding.Dimensions)
		provider, model = "placeholder", fmt.Sprintf("hash-%d", a.cfg.Embedding.Dimensions)
	}

	embedder := base
	if store != nil {
		ttl := time.Duration(a.cfg.Cache.TTLSec) * time.Second
		embedder = embcache.New(base, store, model, ttl, metrics.EmbeddingCacheTotal, a.logger)
	}

	a.logger.Debug("Embedder created",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.Bool("cached", store != nil),
	)
	return embeddinguc.NewInstrumentedEmbedder(embedder, provider, model, a.logger)
}
