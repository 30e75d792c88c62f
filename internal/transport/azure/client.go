// Package azure holds REST clients for the Azure AI services used by the demos.
// Each client takes an explicit Config; nothing is shared between clients.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
)

const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4096

// Config holds the endpoint and key of one Azure AI resource.
type Config struct {
	Endpoint   string
	Key        string
	Region     string // translator only
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// APIError is a non-2xx response from an Azure AI service.
type APIError struct {
	Service    string
	Op         string
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Service, e.Op, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Service, e.Op, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error { return domain.ErrProviderError }

type client struct {
	service  string
	endpoint string
	key      string
	http     *http.Client
	logger   *zap.Logger
}

func newClient(service string, cfg Config) *client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{
		service:  service,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		key:      cfg.Key,
		http:     hc,
		logger:   logger.With(zap.String("service", service)),
	}
}

type request struct {
	op          string
	method      string
	path        string // relative to endpoint, or an absolute URL
	query       url.Values
	contentType string
	body        []byte
	header      http.Header
}

// jsonRequest builds a POST request with a JSON-encoded body.
func jsonRequest(op, path string, query url.Values, payload any) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal %s request: %w", op, err)
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		query:       query,
		contentType: "application/json",
		body:        body,
	}, nil
}

func (c *client) url(r request) string {
	u := r.path
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.endpoint + r.path
	}
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + r.query.Encode()
	}
	return u
}

// send executes r and returns the response headers and body. Non-2xx yields *APIError.
func (c *client) send(ctx context.Context, r request) (http.Header, []byte, error) {
	start := time.Now()
	header, body, err := c.roundTrip(ctx, r)
	metrics.ObserveRequest(c.service, r.op, start, err)

	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("op", r.op),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, nil, err
	}
	c.logger.Debug("Request completed",
		zap.String("op", r.op),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(body)),
	)
	return header, body, nil
}

func (c *client) roundTrip(ctx context.Context, r request) (http.Header, []byte, error) {
	var reader io.Reader = http.NoBody
	if r.body != nil {
		reader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r), reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: new request: %w", c.service, r.op, err)
	}
	req.Header.Set(subscriptionKeyHeader, c.key)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", c.service, r.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: read body: %w", c.service, r.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, c.apiError(r.op, resp.StatusCode, body)
	}
	return resp.Header, body, nil
}

// doJSON sends r and decodes the JSON response into out.
func (c *client) doJSON(ctx context.Context, r request, out any) error {
	_, body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", c.service, r.op, err)
	}
	return nil
}

// apiError understands the error envelopes used across the services:
// {"error":{"code","message"}}, {"code","message"} and {"Message"}.
func (c *client) apiError(op string, status int, body []byte) *APIError {
	e := &APIError{Service: c.service, Op: op, StatusCode: status}
	if len(body) > maxErrorBody {
		e.Body = string(body[:maxErrorBody])
	} else {
		e.Body = string(body)
	}

	var envelope struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return e
	}
	if envelope.Error != nil {
		e.Code = envelope.Error.Code
		e.Message = envelope.Error.Message
		return e
	}
	e.Message = envelope.Message
	if len(envelope.Code) > 0 {
		e.Code = strings.Trim(string(envelope.Code), `"`)
	}
	return e
}
