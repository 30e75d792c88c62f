package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/validation"
)

func TestScore_SendsRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization: %q", got)
		}
		if _, err := uuid.Parse(r.Header.Get("x-ms-client-request-id")); err != nil {
			t.Errorf("request id is not a uuid: %v", err)
		}

		var body struct {
			Inputs struct {
				WebServiceInput0 []map[string]string `json:"WebServiceInput0"`
			} `json:"Inputs"`
			GlobalParameters map[string]any `json:"GlobalParameters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		rows := body.Inputs.WebServiceInput0
		if len(rows) != 1 {
			t.Errorf("expected 1 row, got %d", len(rows))
			return
		}
		if len(rows[0]) != 26 {
			t.Errorf("expected 26 columns, got %d", len(rows[0]))
		}
		if rows[0]["make"] != "alfa-romero" || rows[0]["num-of-doors"] != "two" {
			t.Errorf("unexpected row: %v", rows[0])
		}
		if body.GlobalParameters == nil {
			t.Error("expected GlobalParameters object")
		}
		_, _ = w.Write([]byte(`{"Results":{"WebServiceOutput0":[{"Scored Labels":13880.7}]}}`))
	}))
	defer server.Close()

	c := NewClient(Config{URL: server.URL, APIKey: "secret", Logger: zap.NewNop()})
	out, err := c.Score(context.Background(), SampleCar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"Results":{"WebServiceOutput0":[{"Scored Labels":13880.7}]}}` {
		t.Errorf("unexpected response: %s", out)
	}
}

func TestScore_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("x-ms-request-id", "req-1")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	_, err := NewClient(Config{URL: server.URL, APIKey: "bad"}).Score(context.Background(), SampleCar())

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
	if httpErr.Header.Get("x-ms-request-id") != "req-1" {
		t.Errorf("expected request id header to be kept")
	}
	decoded, ok := httpErr.DecodedBody().(map[string]any)
	if !ok || decoded["message"] != "invalid key" {
		t.Errorf("unexpected decoded body: %v", httpErr.DecodedBody())
	}
	if err.Error() != "the request failed with status code: 401" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHTTPError_TextBody(t *testing.T) {
	e := &HTTPError{StatusCode: 502, Body: []byte("upstream down")}
	if got := e.DecodedBody(); got != "upstream down" {
		t.Errorf("DecodedBody() = %v", got)
	}
}

func TestScore_ValidatesBeforeSending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	car := SampleCar()
	car.FuelType = "electric"
	car.Horsepower = "lots"

	_, err := NewClient(Config{URL: server.URL}).Score(context.Background(), car)

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["fuel-type"]; !ok {
		t.Errorf("expected fuel-type error, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["horsepower"]; !ok {
		t.Errorf("expected horsepower error, got %v", verr.Fields)
	}
}

func TestScore_InsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	if _, err := NewClient(Config{URL: server.URL}).Score(context.Background(), SampleCar()); err == nil {
		t.Fatal("expected certificate error without skip verify")
	}
	if _, err := NewClient(Config{URL: server.URL, InsecureSkipVerify: true}).Score(context.Background(), SampleCar()); err != nil {
		t.Fatalf("unexpected error with skip verify: %v", err)
	}
}

func TestScore_NoRecords(t *testing.T) {
	if _, err := NewClient(Config{URL: "http://unused"}).Score(context.Background()); err == nil {
		t.Fatal("expected error without records")
	}
}
