package azure

import (
	"context"
	"fmt"
	"net/url"
)

const languageAPIVersion = "2023-04-01"

// Analysis kinds accepted by the language service.
const (
	KindSentiment         = "SentimentAnalysis"
	KindKeyPhrases        = "KeyPhraseExtraction"
	KindEntityRecognition = "EntityRecognition"
	KindLanguageDetection = "LanguageDetection"
)

// LanguageClient calls the text analytics endpoint of an Azure AI Language resource.
type LanguageClient struct {
	c *client
}

// NewLanguageClient creates a client for the language service.
func NewLanguageClient(cfg Config) *LanguageClient {
	return &LanguageClient{c: newClient("language", cfg)}
}

// TextDocument is one input to an analysis request.
type TextDocument struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

// DocumentError reports a per-document failure inside an otherwise successful call.
type DocumentError struct {
	ID    string `json:"id"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ConfidenceScores are the per-label sentiment confidences.
type ConfidenceScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentenceSentiment is the sentiment of a single sentence.
type SentenceSentiment struct {
	Text             string           `json:"text"`
	Sentiment        string           `json:"sentiment"`
	ConfidenceScores ConfidenceScores `json:"confidenceScores"`
}

// SentimentResult is the sentiment of one document.
type SentimentResult struct {
	ID               string              `json:"id"`
	Sentiment        string              `json:"sentiment"`
	ConfidenceScores ConfidenceScores    `json:"confidenceScores"`
	Sentences        []SentenceSentiment `json:"sentences"`
}

// KeyPhraseResult lists the key phrases of one document.
type KeyPhraseResult struct {
	ID         string   `json:"id"`
	KeyPhrases []string `json:"keyPhrases"`
}

// Entity is a recognized named entity.
type Entity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory,omitempty"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// EntityResult lists the entities of one document.
type EntityResult struct {
	ID       string   `json:"id"`
	Entities []Entity `json:"entities"`
}

// DetectedLanguage is the primary language of a document.
type DetectedLanguage struct {
	Name            string  `json:"name"`
	ISO6391Name     string  `json:"iso6391Name"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// LanguageResult is the detected language of one document.
type LanguageResult struct {
	ID               string           `json:"id"`
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
}

// AnalyzeResult carries successful documents and per-document errors.
type AnalyzeResult[T any] struct {
	Documents []T
	Errors    []DocumentError
}

type analyzeRequest struct {
	Kind       string `json:"kind"`
	Parameters struct {
		ModelVersion string `json:"modelVersion"`
	} `json:"parameters"`
	AnalysisInput struct {
		Documents []TextDocument `json:"documents"`
	} `json:"analysisInput"`
}

type analyzeResponse[T any] struct {
	Kind    string `json:"kind"`
	Results struct {
		Documents []T             `json:"documents"`
		Errors    []DocumentError `json:"errors"`
	} `json:"results"`
}

func analyze[T any](ctx context.Context, c *client, kind string, docs []TextDocument) (AnalyzeResult[T], error) {
	if len(docs) == 0 {
		return AnalyzeResult[T]{}, nil
	}

	var payload analyzeRequest
	payload.Kind = kind
	payload.Parameters.ModelVersion = "latest"
	payload.AnalysisInput.Documents = docs

	req, err := jsonRequest(kind, "/language/:analyze-text",
		url.Values{"api-version": {languageAPIVersion}}, payload)
	if err != nil {
		return AnalyzeResult[T]{}, err
	}

	var resp analyzeResponse[T]
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return AnalyzeResult[T]{}, err
	}
	return AnalyzeResult[T]{Documents: resp.Results.Documents, Errors: resp.Results.Errors}, nil
}

// Sentiment scores the sentiment of each document.
func (l *LanguageClient) Sentiment(ctx context.Context, docs []TextDocument) (AnalyzeResult[SentimentResult], error) {
	return analyze[SentimentResult](ctx, l.c, KindSentiment, docs)
}

// KeyPhrases extracts key phrases from each document.
func (l *LanguageClient) KeyPhrases(ctx context.Context, docs []TextDocument) (AnalyzeResult[KeyPhraseResult], error) {
	return analyze[KeyPhraseResult](ctx, l.c, KindKeyPhrases, docs)
}

// Entities recognizes named entities in each document.
func (l *LanguageClient) Entities(ctx context.Context, docs []TextDocument) (AnalyzeResult[EntityResult], error) {
	return analyze[EntityResult](ctx, l.c, KindEntityRecognition, docs)
}

// DetectLanguage identifies the primary language of each document.
func (l *LanguageClient) DetectLanguage(ctx context.Context, docs []TextDocument) (AnalyzeResult[LanguageResult], error) {
	return analyze[LanguageResult](ctx, l.c, KindLanguageDetection, docs)
}

// Documents numbers texts as documents "1", "2", ... in the given language.
func Documents(language string, texts ...string) []TextDocument {
	docs := make([]TextDocument, len(texts))
	for i, t := range texts {
		docs[i] = TextDocument{ID: fmt.Sprint(i + 1), Language: language, Text: t}
	}
	return docs
}
