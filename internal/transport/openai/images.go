package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
)

// GenerateImage creates n images for prompt and returns their URLs.
func (c *Client) GenerateImage(ctx context.Context, prompt string, n int) ([]domain.GeneratedImage, error) {
	if n <= 0 {
		n = 1
	}

	start := time.Now()
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              n,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		err = parseAPIError("image generation", err)
		metrics.ObserveRequest(c.provider, "image", start, err)
		return nil, err
	}
	if len(resp.Data) == 0 {
		err = fmt.Errorf("image generation: %w", domain.ErrEmptyCompletion)
		metrics.ObserveRequest(c.provider, "image", start, err)
		return nil, err
	}
	metrics.ObserveRequest(c.provider, "image", start, nil)

	images := make([]domain.GeneratedImage, len(resp.Data))
	for i, d := range resp.Data {
		images[i] = domain.GeneratedImage{URL: d.URL, RevisedPrompt: d.RevisedPrompt}
	}
	return images, nil
}
