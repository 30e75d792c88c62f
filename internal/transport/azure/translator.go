package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const translatorAPIVersion = "3.0"

// TranslatorClient calls the global Azure AI Translator endpoint.
type TranslatorClient struct {
	c      *client
	region string
}

// NewTranslatorClient creates a translator client.
// Region is sent as Ocp-Apim-Subscription-Region and is required for regional keys.
func NewTranslatorClient(cfg Config) *TranslatorClient {
	return &TranslatorClient{c: newClient("translator", cfg), region: cfg.Region}
}

// Translation is the text translated into one target language.
type Translation struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

// TranslationResult is the translator's answer for one input text.
type TranslationResult struct {
	DetectedLanguage *struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage,omitempty"`
	Translations []Translation `json:"translations"`
}

// Translate translates text into each target language. The source language is auto-detected.
func (t *TranslatorClient) Translate(ctx context.Context, text string, to ...string) (TranslationResult, error) {
	if len(to) == 0 {
		return TranslationResult{}, errors.New("translate: at least one target language is required")
	}

	q := url.Values{"api-version": {translatorAPIVersion}}
	for _, lang := range to {
		q.Add("to", lang)
	}

	req, err := jsonRequest("translate", "/translate", q, []map[string]string{{"text": text}})
	if err != nil {
		return TranslationResult{}, err
	}
	req.header = http.Header{}
	req.header.Set("X-ClientTraceId", uuid.NewString())
	if t.region != "" {
		req.header.Set("Ocp-Apim-Subscription-Region", t.region)
	}

	var results []TranslationResult
	if err := t.c.doJSON(ctx, req, &results); err != nil {
		return TranslationResult{}, err
	}
	if len(results) == 0 {
		return TranslationResult{}, fmt.Errorf("translate: empty response")
	}
	return results[0], nil
}
