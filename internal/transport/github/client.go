// Package github reads the authenticated user from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
)

// Config configures the GitHub client.
type Config struct {
	BaseURL    string // default https://api.github.com
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls the GitHub REST API with a personal access token.
type Client struct {
	api    *gh.Client
	token  string
	logger *zap.Logger
}

// NewClient creates a GitHub client. An empty token makes every call return ErrUnauthenticated.
func NewClient(cfg Config) (*Client, error) {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	api := gh.NewClient(hc)
	if cfg.Token != "" {
		api = api.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		// go-github resolves relative paths, so the base needs a trailing slash.
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github api url: %w", err)
		}
		api.BaseURL = base
	}

	return &Client{api: api, token: cfg.Token, logger: logger}, nil
}

// User returns the profile that owns the token.
func (c *Client) User(ctx context.Context) (domain.UserProfile, error) {
	if c.token == "" {
		return domain.UserProfile{}, domain.ErrUnauthenticated
	}

	start := time.Now()
	user, err := c.user(ctx)
	metrics.ObserveRequest("github", "user", start, err)
	return user, err
}

func (c *Client) user(ctx context.Context) (domain.UserProfile, error) {
	u, resp, err := c.api.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("GitHub rejected the token")
			return domain.UserProfile{}, domain.ErrUnauthenticated
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.UserProfile{}, fmt.Errorf("github user: %w", err)
		}
		return domain.UserProfile{}, fmt.Errorf("github user: %w: %w", err, domain.ErrProviderError)
	}

	return domain.UserProfile{
		Login:       u.GetLogin(),
		ID:          u.GetID(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Bio:         u.GetBio(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
	}, nil
}

// HealthCheck reports whether the API answers. Client errors such as a bad token still count as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := c.api.NewRequest(http.MethodGet, "zen", nil)
	if err != nil {
		return fmt.Errorf("github health: %w", err)
	}
	resp, err := c.api.Do(ctx, req, nil)
	if err == nil {
		return nil
	}
	if resp != nil && resp.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return fmt.Errorf("github health: %w", err)
}
