package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
)

// CompleteText sends a text completion to the completion deployment.
func (c *Client) CompleteText(ctx context.Context, req domain.TextRequest) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.completionModel,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	})
	if err != nil {
		err = parseAPIError("text completion", err)
		metrics.ObserveRequest(c.provider, "completion", start, err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		err = fmt.Errorf("text completion: %w", domain.ErrEmptyCompletion)
		metrics.ObserveRequest(c.provider, "completion", start, err)
		return "", err
	}

	metrics.ObserveRequest(c.provider, "completion", start, nil)
	metrics.ObserveTokens(c.provider, c.completionModel, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	domain.UsageFromContext(ctx).Add(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return resp.Choices[0].Text, nil
}
