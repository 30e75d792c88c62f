package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/timothywarner/ai900/internal/domain"
)

// GroundedSystemPrompt restricts the model to the supplied context documents.
const GroundedSystemPrompt = `You are a helpful Azure AI assistant. Answer questions based ONLY on the provided context documents. 
If the answer is not in the context, say "I don't have information about that in my knowledge base."
Be concise and accurate. Cite which document you're referencing when possible.`

// BaselineSystemPrompt is used for answers without retrieval.
const BaselineSystemPrompt = "You are a helpful assistant."

// GeneratorConfig holds sampling parameters for grounded and baseline answers.
type GeneratorConfig struct {
	Temperature       float32
	MaxTokens         int
	BaselineMaxTokens int
}

// Generator turns retrieved documents and a question into a model answer.
type Generator struct {
	chat ChatCompleter
	cfg  GeneratorConfig
}

// NewGenerator creates a generator.
func NewGenerator(chat ChatCompleter, cfg GeneratorConfig) *Generator {
	return &Generator{chat: chat, cfg: cfg}
}

// BuildContext renders documents as "Document: <title>\n<content>" blocks separated by blank lines.
func BuildContext(docs []domain.ScoredDocument) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = "Document: " + d.Title + "\n" + d.Content
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt renders the user turn for a grounded answer.
func BuildPrompt(question, contextText string) string {
	return "Context Documents:\n" + contextText +
		"\n\nQuestion: " + question +
		"\n\nAnswer based on the context above:"
}

// Generate asks the model to answer question from docs. The model text is returned verbatim.
func (g *Generator) Generate(
	ctx context.Context, question string, docs []domain.ScoredDocument,
) (string, error) {
	res, err := g.chat.Complete(ctx, domain.ChatRequest{
		Messages: []domain.ChatMessage{
			domain.SystemMessage(GroundedSystemPrompt),
			domain.UserMessage(BuildPrompt(question, BuildContext(docs))),
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return res.Content, nil
}

// Baseline asks the model the question with no retrieved context.
func (g *Generator) Baseline(ctx context.Context, question string) (string, error) {
	res, err := g.chat.Complete(ctx, domain.ChatRequest{
		Messages: []domain.ChatMessage{
			domain.SystemMessage(BaselineSystemPrompt),
			domain.UserMessage(question),
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.BaselineMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("baseline answer: %w", err)
	}
	return res.Content, nil
}
