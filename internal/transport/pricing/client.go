// Package pricing calls an Azure Machine Learning real-time scoring endpoint
// that predicts automobile prices.
package pricing

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/metrics"
	"github.com/timothywarner/ai900/internal/validation"
)

// Config configures the scoring client.
type Config struct {
	URL                string
	APIKey             string
	InsecureSkipVerify bool // for scoring services behind self-signed certificates
	Timeout            time.Duration
	HTTPClient         *http.Client // overrides Timeout and InsecureSkipVerify
	Logger             *zap.Logger
}

// Client submits car feature records for scoring.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a scoring client.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
		if cfg.InsecureSkipVerify {
			tr := http.DefaultTransport.(*http.Transport).Clone()
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed scoring services
			hc.Transport = tr
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		http:   hc,
		logger: logger.With(zap.String("service", "pricing")),
	}
}

// HTTPError is a non-2xx scoring response. Header carries the request id and timestamp
// the service returns for troubleshooting.
type HTTPError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("the request failed with status code: %d", e.StatusCode)
}

// DecodedBody returns the body as JSON when it parses, or as text otherwise.
func (e *HTTPError) DecodedBody() any {
	var v any
	if err := json.Unmarshal(e.Body, &v); err == nil {
		return v
	}
	return strings.ToValidUTF8(string(e.Body), "")
}

type scoreRequest struct {
	Inputs struct {
		WebServiceInput0 []CarFeatures `json:"WebServiceInput0"`
	} `json:"Inputs"`
	GlobalParameters struct{} `json:"GlobalParameters"`
}

// Score validates the records, posts them and returns the raw JSON response.
func (c *Client) Score(ctx context.Context, records ...CarFeatures) (json.RawMessage, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("score: at least one record is required")
	}
	for i := range records {
		if err := validation.Struct(records[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	var payload scoreRequest
	payload.Inputs.WebServiceInput0 = records
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	start := time.Now()
	out, err := c.post(ctx, body)
	metrics.ObserveRequest("pricing", "score", start, err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Scored records",
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}

func (c *Client) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("score: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("x-ms-client-request-id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("score: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("score: response is not JSON")
	}
	return data, nil
}
