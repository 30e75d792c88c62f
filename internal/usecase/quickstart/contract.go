package quickstart

import (
	"context"

	"github.com/timothywarner/ai900/internal/domain"
)

// ChatCompleter sends chat completion requests.
type ChatCompleter interface {
	Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}

// TextCompleter sends legacy text completion requests.
type TextCompleter interface {
	CompleteText(ctx context.Context, req domain.TextRequest) (string, error)
}

// ImageGenerator creates images from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, n int) ([]domain.GeneratedImage, error)
}
