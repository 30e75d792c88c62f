package domain

import "context"

// Role is the author of a chat message.
type Role string

// Chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    Role
	Content string
}

// SystemMessage builds a system turn.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user turn.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	Messages    []ChatMessage
	Temperature float32
	MaxTokens   int  // 0 = provider default
	Seed        *int // optional, for reproducible sampling
	JSON        bool // ask for a JSON object response
}

// ChatResult is the first choice of a chat completion plus usage.
type ChatResult struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// ChatCompleter sends chat completion requests to a hosted model.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResult, error)
}

// TextRequest is a legacy prompt-in, text-out completion request.
type TextRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeneratedImage is one generated image reference.
type GeneratedImage struct {
	URL           string
	RevisedPrompt string
}
