package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timothywarner/ai900/internal/domain"
)

func newTestClient(t *testing.T, url, token string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: url, Token: token})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer ghp_test" {
			t.Errorf("unexpected authorization: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat","id":1,"name":"The Octocat","public_repos":8,"followers":20}`))
	}))
	defer server.Close()

	user, err := newTestClient(t, server.URL, "ghp_test").User(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Login != "octocat" || user.ID != 1 || user.Name != "The Octocat" || user.PublicRepos != 8 || user.Followers != 20 {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.DisplayName() != "The Octocat" {
		t.Errorf("DisplayName() = %q", user.DisplayName())
	}
}

func TestUser_BaseURLWithPathPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer server.Close()

	if _, err := newTestClient(t, server.URL+"/api/v3", "t").User(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUser_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, "").User(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUser_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad credentials", http.StatusUnauthorized, domain.ErrUnauthenticated},
		{"forbidden", http.StatusForbidden, domain.ErrProviderError},
		{"server error", http.StatusBadGateway, domain.ErrProviderError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL, "t").User(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUser_UsesConfiguredHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer server.Close()

	rt := &countingTransport{next: http.DefaultTransport}
	c, err := NewClient(Config{BaseURL: server.URL, Token: "t", HTTPClient: &http.Client{Transport: rt}})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.User(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.calls != 1 {
		t.Errorf("expected 1 request through the configured client, got %d", rt.calls)
	}
}

type countingTransport struct {
	next  http.RoundTripper
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestHealthCheck(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zen" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(status)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status = http.StatusUnauthorized
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Fatalf("a 401 still means reachable, got %v", err)
	}

	status = http.StatusServiceUnavailable
	if err := c.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error for 503")
	}
}
