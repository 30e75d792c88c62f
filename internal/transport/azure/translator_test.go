package azure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTranslator_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api-version") != "3.0" {
			t.Errorf("unexpected api-version: %s", q.Get("api-version"))
		}
		if to := q["to"]; len(to) != 2 || to[0] != "fr" || to[1] != "de" {
			t.Errorf("unexpected targets: %v", to)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Region") != "westus2" {
			t.Errorf("missing region header")
		}
		if _, err := uuid.Parse(r.Header.Get("X-ClientTraceId")); err != nil {
			t.Errorf("trace id is not a uuid: %v", err)
		}

		var body []map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(body) != 1 || body[0]["text"] != "Hello" {
			t.Errorf("unexpected body: %v", body)
		}

		_, _ = w.Write([]byte(`[{"detectedLanguage":{"language":"en","score":1.0},
		  "translations":[{"text":"Bonjour","to":"fr"},{"text":"Hallo","to":"de"}]}]`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Region = "westus2"
	res, err := NewTranslatorClient(cfg).Translate(context.Background(), "Hello", "fr", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DetectedLanguage == nil || res.DetectedLanguage.Language != "en" {
		t.Errorf("unexpected detected language: %+v", res.DetectedLanguage)
	}
	if len(res.Translations) != 2 || res.Translations[0].Text != "Bonjour" {
		t.Errorf("unexpected translations: %+v", res.Translations)
	}
}

func TestTranslator_RequiresTarget(t *testing.T) {
	if _, err := NewTranslatorClient(Config{}).Translate(context.Background(), "Hello"); err == nil {
		t.Fatal("expected error without target language")
	}
}
