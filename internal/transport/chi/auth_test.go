package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(keys []string, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	BearerAuthMiddleware(keys)(okHandler()).ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_NoKeys_PassThrough(t *testing.T) {
	for _, keys := range [][]string{nil, {"", ""}} {
		req := httptest.NewRequest(http.MethodGet, "/api/metrics", http.NoBody)
		if rr := serveAuth(keys, req); rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/metrics", http.NoBody)
	rr := serveAuth([]string{"secret"}, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var body errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error != "missing authorization header" {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"wrong key", "Bearer wrong-key"},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/metrics", http.NoBody)
			req.Header.Set("Authorization", tt.header)
			if rr := serveAuth([]string{"secret"}, req); rr.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddleware_MultipleKeys(t *testing.T) {
	for _, key := range []string{"key1", "key2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/metrics", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+key)
		if rr := serveAuth([]string{"key1", "key2"}, req); rr.Code != http.StatusOK {
			t.Errorf("key %s: got %d, want %d", key, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware_PreflightSkipsAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/metrics", http.NoBody)
	if rr := serveAuth([]string{"secret"}, req); rr.Code != http.StatusOK {
		t.Errorf("preflight: got %d, want %d", rr.Code, http.StatusOK)
	}
}
