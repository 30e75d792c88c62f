package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/metrics"
)

// Compile-time check: Client implements domain.ChatCompleter.
var _ domain.ChatCompleter = (*Client)(nil)

// Complete sends a chat completion to the chat deployment and returns the first choice.
func (c *Client) Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	apiReq := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    toMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Seed:        req.Seed,
	}
	if req.JSON {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		err = parseAPIError("chat completion", err)
		metrics.ObserveRequest(c.provider, "chat", start, err)
		return domain.ChatResult{}, err
	}

	if len(resp.Choices) == 0 {
		err = fmt.Errorf("chat completion: %w", domain.ErrEmptyCompletion)
		metrics.ObserveRequest(c.provider, "chat", start, err)
		return domain.ChatResult{}, err
	}

	metrics.ObserveRequest(c.provider, "chat", start, nil)
	metrics.ObserveTokens(c.provider, c.chatModel, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	domain.UsageFromContext(ctx).Add(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	c.logger.Debug("Chat completion",
		zap.String("model", c.chatModel),
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
	)

	return domain.ChatResult{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func toMessages(msgs []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}
