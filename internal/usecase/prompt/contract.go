package prompt

import (
	"context"

	"github.com/timothywarner/ai900/internal/domain"
)

// ChatCompleter sends chat completion requests.
type ChatCompleter interface {
	Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}
