package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
)

// API types accepted by Config.APIType.
const (
	APITypeAzure  = "azure"
	APITypeOpenAI = "openai"
)

// Config holds connection settings for an Azure OpenAI resource or an OpenAI-compatible API.
type Config struct {
	APIType    string // azure (default) or openai
	BaseURL    string // Azure resource endpoint, or API base URL for openai
	APIKey     string
	APIVersion string // Azure only

	ChatModel       string // chat deployment
	CompletionModel string // text completion deployment
	ImageModel      string // image generation deployment

	Provider   string // metrics label, default "azure_openai"
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (c *Config) provider() string {
	if c.Provider != "" {
		return c.Provider
	}
	if c.APIType == APITypeOpenAI {
		return "openai"
	}
	return "azure_openai"
}

// newClient builds the go-openai client. For Azure, model names are deployment names
// and are passed through unchanged.
func newClient(cfg *Config) *openai.Client {
	var clientCfg openai.ClientConfig
	if cfg.APIType == APITypeOpenAI {
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	} else {
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		clientCfg.AzureModelMapperFunc = func(model string) string { return model }
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	return openai.NewClientWithConfig(clientCfg)
}

// Client sends chat, text completion and image generation requests.
type Client struct {
	client          *openai.Client
	chatModel       string
	completionModel string
	imageModel      string
	provider        string
	logger          *zap.Logger
}

// NewClient creates a model client. Lifetime is owned by the caller; there is no shared instance.
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:          newClient(cfg),
		chatModel:       cfg.ChatModel,
		completionModel: cfg.CompletionModel,
		imageModel:      cfg.ImageModel,
		provider:        cfg.provider(),
		logger:          logger,
	}
}

// HealthCheck verifies API availability via ListModels.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return parseAPIError("list models", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrProviderError.
func parseAPIError(op string, err error) error {
	wrap := domain.ErrProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("%s: API error %d: %s: %w", op, reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: API error %d: %s: %w", op, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: request failed: %v: %w", op, err, wrap)
}

// extractDetail pulls a message from either {"detail": "..."} or {"error": {"message": "..."}} bodies.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Error.Message
}
