package azure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const visionPath = "/vision/v3.2"

// DefaultVisualFeatures are requested by Analyze when none are given.
var DefaultVisualFeatures = []string{"Categories", "Description", "Tags", "Adult", "Brands", "Color"}

// VisionClient calls the Computer Vision v3.2 REST API.
type VisionClient struct {
	c *client
}

// NewVisionClient creates a computer vision client.
func NewVisionClient(cfg Config) *VisionClient {
	return &VisionClient{c: newClient("vision", cfg)}
}

// ImageSource is either a public URL or raw image bytes. URL wins when both are set.
type ImageSource struct {
	URL  string
	Data []byte
}

// ImageURL returns a source pointing at a public image.
func ImageURL(u string) ImageSource { return ImageSource{URL: u} }

func (s ImageSource) request(op, path string, q url.Values) (request, error) {
	if s.URL != "" {
		return jsonRequest(op, path, q, map[string]string{"url": s.URL})
	}
	if len(s.Data) == 0 {
		return request{}, fmt.Errorf("%s: image source is empty", op)
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		query:       q,
		contentType: "application/octet-stream",
		body:        s.Data,
	}, nil
}

// Rectangle is a bounding box in pixels.
type Rectangle struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Category is an image category from the 86-category taxonomy.
type Category struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Caption describes the image in one sentence.
type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Tag is a content tag.
type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Brand is a detected logo.
type Brand struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Rectangle  Rectangle `json:"rectangle"`
}

// ImageAnalysis is the analyze response for the requested features.
type ImageAnalysis struct {
	Categories  []Category `json:"categories"`
	Description struct {
		Tags     []string  `json:"tags"`
		Captions []Caption `json:"captions"`
	} `json:"description"`
	Tags  []Tag `json:"tags"`
	Adult struct {
		IsAdultContent bool    `json:"isAdultContent"`
		IsRacyContent  bool    `json:"isRacyContent"`
		IsGoryContent  bool    `json:"isGoryContent"`
		AdultScore     float64 `json:"adultScore"`
		RacyScore      float64 `json:"racyScore"`
		GoreScore      float64 `json:"goreScore"`
	} `json:"adult"`
	Brands []Brand `json:"brands"`
	Color  struct {
		DominantColorForeground string   `json:"dominantColorForeground"`
		DominantColorBackground string   `json:"dominantColorBackground"`
		DominantColors          []string `json:"dominantColors"`
		AccentColor             string   `json:"accentColor"`
		IsBWImg                 bool     `json:"isBwImg"`
	} `json:"color"`
	Metadata struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	} `json:"metadata"`
}

// DetectedObject is one object found by Detect.
type DetectedObject struct {
	Rectangle  Rectangle `json:"rectangle"`
	Object     string    `json:"object"`
	Confidence float64   `json:"confidence"`
}

// OCRResult is the printed text found in an image, grouped into regions.
type OCRResult struct {
	Language    string  `json:"language"`
	Orientation string  `json:"orientation"`
	TextAngle   float64 `json:"textAngle"`
	Regions     []struct {
		Lines []struct {
			Words []struct {
				Text string `json:"text"`
			} `json:"words"`
		} `json:"lines"`
	} `json:"regions"`
}

// Lines joins the words of every recognized line.
func (r OCRResult) Lines() []string {
	var lines []string
	for _, region := range r.Regions {
		for _, line := range region.Lines {
			words := make([]string, len(line.Words))
			for i, w := range line.Words {
				words[i] = w.Text
			}
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return lines
}

// Analyze classifies, tags and describes an image.
func (v *VisionClient) Analyze(ctx context.Context, src ImageSource, features ...string) (ImageAnalysis, error) {
	if len(features) == 0 {
		features = DefaultVisualFeatures
	}
	req, err := src.request("analyze", visionPath+"/analyze",
		url.Values{"visualFeatures": {strings.Join(features, ",")}})
	if err != nil {
		return ImageAnalysis{}, err
	}

	var out ImageAnalysis
	if err := v.c.doJSON(ctx, req, &out); err != nil {
		return ImageAnalysis{}, err
	}
	return out, nil
}

// Detect locates objects in an image.
func (v *VisionClient) Detect(ctx context.Context, src ImageSource) ([]DetectedObject, error) {
	req, err := src.request("detect", visionPath+"/detect", nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Objects []DetectedObject `json:"objects"`
	}
	if err := v.c.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Objects, nil
}

// OCR recognizes printed text with automatic language and orientation detection.
func (v *VisionClient) OCR(ctx context.Context, src ImageSource) (OCRResult, error) {
	req, err := src.request("ocr", visionPath+"/ocr",
		url.Values{"language": {"unk"}, "detectOrientation": {"true"}})
	if err != nil {
		return OCRResult{}, err
	}

	var out OCRResult
	if err := v.c.doJSON(ctx, req, &out); err != nil {
		return OCRResult{}, err
	}
	return out, nil
}

// maxImageBytes caps downloads made by FetchImage.
const maxImageBytes = 20 << 20

// FetchImage downloads an image so it can be annotated locally.
func FetchImage(ctx context.Context, hc *http.Client, imageURL string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("fetch image: larger than %d bytes", maxImageBytes)
	}
	return data, nil
}
