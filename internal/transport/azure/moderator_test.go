package azure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestModerator_ScreenText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contentmoderator/moderate/v1.0/ProcessText/Screen" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("language") != "eng" || q.Get("PII") != "true" || q.Get("classify") != "true" {
			t.Errorf("unexpected query: %v", q)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("unexpected content type: %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "Is this a crap email address: test@example.com" {
			t.Errorf("unexpected body: %q", body)
		}
		_, _ = w.Write([]byte(`{
		  "OriginalText": "Is this a crap email address: test@example.com",
		  "Language": "eng",
		  "Terms": [{"Index": 10, "OriginalIndex": 10, "ListId": 0, "Term": "crap"}],
		  "PII": {"Email": [{"Detected": "test@example.com", "SubType": "Regular", "Text": "test@example.com", "Index": 31}],
		          "Phone": [], "Address": []},
		  "Classification": {"Category1": {"Score": 0.01}, "Category2": {"Score": 0.2}, "Category3": {"Score": 0.98},
		                     "ReviewRecommended": true}
		}`))
	}))
	defer server.Close()

	res, err := NewModeratorClient(testConfig(server.URL)).
		ScreenText(context.Background(), "Is this a crap email address: test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Terms) != 1 || res.Terms[0].Term != "crap" {
		t.Errorf("unexpected terms: %+v", res.Terms)
	}
	if res.PII.Empty() || res.PII.Email[0].Text != "test@example.com" {
		t.Errorf("unexpected PII: %+v", res.PII)
	}
	if res.Classification == nil || !res.Classification.ReviewRecommended || res.Classification.Category3.Score != 0.98 {
		t.Errorf("unexpected classification: %+v", res.Classification)
	}
}

func TestPII_Empty(t *testing.T) {
	var nilPII *PII
	if !nilPII.Empty() {
		t.Error("nil PII should be empty")
	}
	if !(&PII{}).Empty() {
		t.Error("zero PII should be empty")
	}
	if (&PII{Phone: []PIIMatch{{Text: "425-555-1212"}}}).Empty() {
		t.Error("PII with a phone should not be empty")
	}
}

func TestModerator_EvaluateImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contentmoderator/moderate/v1.0/ProcessImage/Evaluate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["DataRepresentation"] != "URL" || body["Value"] != "https://example.com/sample.jpg" {
			t.Errorf("unexpected body: %v", body)
		}
		_, _ = w.Write([]byte(`{"AdultClassificationScore":0.02,"IsImageAdultClassified":false,
		  "RacyClassificationScore":0.05,"IsImageRacyClassified":false}`))
	}))
	defer server.Close()

	res, err := NewModeratorClient(testConfig(server.URL)).
		EvaluateImage(context.Background(), ImageURL("https://example.com/sample.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsImageAdultClassified || res.RacyClassificationScore != 0.05 {
		t.Errorf("unexpected evaluation: %+v", res)
	}
}

func TestModerator_ImageOCRBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("language") != "eng" {
			t.Errorf("unexpected query: %v", r.URL.Query())
		}
		if ct := r.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("unexpected content type: %s", ct)
		}
		_, _ = w.Write([]byte(`{"Language":"eng","Text":"SALE 50% OFF"}`))
	}))
	defer server.Close()

	res, err := NewModeratorClient(testConfig(server.URL)).ImageOCR(context.Background(), ImageSource{Data: png})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "SALE 50% OFF" {
		t.Errorf("unexpected text: %q", res.Text)
	}
}
