package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const moderatorPath = "/contentmoderator/moderate/v1.0"

// ModeratorClient calls the Content Moderator REST API.
type ModeratorClient struct {
	c *client
}

// NewModeratorClient creates a content moderator client.
func NewModeratorClient(cfg Config) *ModeratorClient {
	return &ModeratorClient{c: newClient("moderator", cfg)}
}

// Term is a profane term matched in screened text.
type Term struct {
	Index         int    `json:"Index"`
	OriginalIndex int    `json:"OriginalIndex"`
	ListID        int    `json:"ListId"`
	Term          string `json:"Term"`
}

// PIIMatch is a detected piece of personal information.
type PIIMatch struct {
	Detected string `json:"Detected"`
	SubType  string `json:"SubType,omitempty"`
	Text     string `json:"Text"`
	Index    int    `json:"Index"`
}

// PII groups detected personal information by kind.
type PII struct {
	Email   []PIIMatch `json:"Email"`
	Phone   []PIIMatch `json:"Phone"`
	Address []PIIMatch `json:"Address"`
	IPA     []PIIMatch `json:"IPA"`
	SSN     []PIIMatch `json:"SSN"`
}

// Empty reports whether no personal information was found.
func (p *PII) Empty() bool {
	return p == nil || len(p.Email)+len(p.Phone)+len(p.Address)+len(p.IPA)+len(p.SSN) == 0
}

// CategoryScore is a single classifier score.
type CategoryScore struct {
	Score float64 `json:"Score"`
}

// Classification holds the three text classifiers.
// Category1: sexually explicit, Category2: sexually suggestive, Category3: offensive.
type Classification struct {
	Category1         CategoryScore `json:"Category1"`
	Category2         CategoryScore `json:"Category2"`
	Category3         CategoryScore `json:"Category3"`
	ReviewRecommended bool          `json:"ReviewRecommended"`
}

// TextScreen is the result of screening text.
type TextScreen struct {
	OriginalText   string          `json:"OriginalText"`
	NormalizedText string          `json:"NormalizedText"`
	Language       string          `json:"Language"`
	Terms          []Term          `json:"Terms"`
	PII            *PII            `json:"PII"`
	Classification *Classification `json:"Classification"`
	TrackingID     string          `json:"TrackingId"`
}

// ImageEvaluation is the adult/racy classification of an image.
type ImageEvaluation struct {
	AdultClassificationScore float64 `json:"AdultClassificationScore"`
	IsImageAdultClassified   bool    `json:"IsImageAdultClassified"`
	RacyClassificationScore  float64 `json:"RacyClassificationScore"`
	IsImageRacyClassified    bool    `json:"IsImageRacyClassified"`
}

// ImageText is the text found in an image by the moderator's OCR.
type ImageText struct {
	Language   string `json:"Language"`
	Text       string `json:"Text"`
	Candidates []struct {
		Text       string  `json:"Text"`
		Confidence float64 `json:"Confidence"`
	} `json:"Candidates"`
}

// ScreenText checks English text for profanity, PII and classifier categories.
func (m *ModeratorClient) ScreenText(ctx context.Context, text string) (TextScreen, error) {
	req := request{
		op:          "screen_text",
		method:      http.MethodPost,
		path:        moderatorPath + "/ProcessText/Screen",
		query:       url.Values{"language": {"eng"}, "PII": {"true"}, "classify": {"true"}},
		contentType: "text/plain",
		body:        []byte(text),
	}

	var out TextScreen
	if err := m.c.doJSON(ctx, req, &out); err != nil {
		return TextScreen{}, err
	}
	return out, nil
}

// EvaluateImage scores an image for adult and racy content.
func (m *ModeratorClient) EvaluateImage(ctx context.Context, src ImageSource) (ImageEvaluation, error) {
	req, err := m.imageRequest("evaluate_image", moderatorPath+"/ProcessImage/Evaluate", nil, src)
	if err != nil {
		return ImageEvaluation{}, err
	}

	var out ImageEvaluation
	if err := m.c.doJSON(ctx, req, &out); err != nil {
		return ImageEvaluation{}, err
	}
	return out, nil
}

// ImageOCR extracts English text from an image.
func (m *ModeratorClient) ImageOCR(ctx context.Context, src ImageSource) (ImageText, error) {
	req, err := m.imageRequest("image_ocr", moderatorPath+"/ProcessImage/OCR",
		url.Values{"language": {"eng"}}, src)
	if err != nil {
		return ImageText{}, err
	}

	var out ImageText
	if err := m.c.doJSON(ctx, req, &out); err != nil {
		return ImageText{}, err
	}
	return out, nil
}

// imageRequest builds the moderator's URL envelope, or a raw body typed by content sniffing.
func (m *ModeratorClient) imageRequest(op, path string, q url.Values, src ImageSource) (request, error) {
	if src.URL != "" {
		return jsonRequest(op, path, q, map[string]string{
			"DataRepresentation": "URL",
			"Value":              src.URL,
		})
	}
	if len(src.Data) == 0 {
		return request{}, fmt.Errorf("%s: image source is empty", op)
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		query:       q,
		contentType: http.DetectContentType(src.Data),
		body:        src.Data,
	}, nil
}
