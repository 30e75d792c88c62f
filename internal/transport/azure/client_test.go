package azure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
)

func testConfig(url string) Config {
	return Config{Endpoint: url + "/", Key: "test-key", Logger: zap.NewNop()}
}

func TestClient_URL(t *testing.T) {
	c := newClient("test", Config{Endpoint: "https://example.com/"})

	tests := []struct {
		name string
		req  request
		want string
	}{
		{"relative", request{path: "/a"}, "https://example.com/a"},
		{"absolute", request{path: "https://other.example.com/op/1"}, "https://other.example.com/op/1"},
		{
			"absolute with query",
			request{path: "https://other.example.com/op/1?x=1", query: map[string][]string{"y": {"2"}}},
			"https://other.example.com/op/1?x=1&y=2",
		},
		{"query", request{path: "/a", query: map[string][]string{"q": {"b c"}}}, "https://example.com/a?q=b+c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.url(tt.req); got != tt.want {
				t.Errorf("url() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_SendsSubscriptionKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("expected subscription key header, got %q", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newClient("test", testConfig(server.URL))
	if _, _, err := c.send(context.Background(), request{op: "get", method: http.MethodGet, path: "/x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_APIErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"nested", 401, `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`,
			"401", "Access denied due to invalid subscription key."},
		{"flat", 400, `{"code":"InvalidRequest","message":"Bad image"}`, "InvalidRequest", "Bad image"},
		{"numeric code", 429, `{"code":429001,"message":"Too many requests"}`, "429001", "Too many requests"},
		{"not json", 502, `<html>bad gateway</html>`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newClient("test", testConfig(server.URL))
			_, _, err := c.send(context.Background(), request{op: "op", method: http.MethodGet, path: "/x"})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if !errors.Is(err, domain.ErrProviderError) {
				t.Error("expected error to wrap ErrProviderError")
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Body != tt.body {
				t.Errorf("Body = %q, want %q", apiErr.Body, tt.body)
			}
		})
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClient("test", testConfig(server.URL))
	_, _, err := c.send(ctx, request{op: "op", method: http.MethodGet, path: "/x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
