// Package quickstart walks through the basic generative AI capabilities:
// text completion, chat, code generation and image generation.
package quickstart

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	logpkg "github.com/timothywarner/ai900/internal/logger"
)

// Prompts used by each step.
const (
	TextPrompt = "Write a short introduction to artificial intelligence for beginners:"

	ConceptSystem   = "You are a helpful AI assistant that explains AI concepts in simple terms."
	ConceptQuestion = "What is machine learning and how is it used in everyday applications?"

	CodeSystem  = "You are a helpful coding assistant."
	CodeRequest = "Write a simple Python function that calculates the average of a list of numbers"

	ImagePrompt = "A friendly robot teaching a group of diverse students about AI, digital art style"
)

// Step names.
const (
	StepText  = "text"
	StepChat  = "chat"
	StepCode  = "code"
	StepImage = "image"
)

// StepResult is the outcome of one walkthrough step. Err is set when the step failed.
type StepResult struct {
	Name     string
	Prompt   string
	Output   string
	Images   []domain.GeneratedImage
	Err      error
	Duration time.Duration
}

// Service runs the quickstart steps.
type Service struct {
	text   TextCompleter
	chat   ChatCompleter
	images ImageGenerator
}

// New creates a quickstart service.
func New(text TextCompleter, chat ChatCompleter, images ImageGenerator) *Service {
	return &Service{text: text, chat: chat, images: images}
}

// Run executes every step in order. A failing step does not stop the ones after it.
func (s *Service) Run(ctx context.Context) []StepResult {
	steps := []func(context.Context) StepResult{s.Text, s.Chat, s.Code, s.Image}

	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		if ctx.Err() != nil {
			break
		}
		results = append(results, step(ctx))
	}
	return results
}

// Text generates an introduction with the completion model.
func (s *Service) Text(ctx context.Context) StepResult {
	return s.run(ctx, StepText, TextPrompt, func(r *StepResult) error {
		out, err := s.text.CompleteText(ctx, domain.TextRequest{
			Prompt:      TextPrompt,
			MaxTokens:   150,
			Temperature: 0.7,
			TopP:        0.95,
		})
		r.Output = out
		return err
	})
}

// Chat explains a concept in plain words.
func (s *Service) Chat(ctx context.Context) StepResult {
	return s.chatStep(ctx, StepChat, ConceptSystem, ConceptQuestion, 0.7)
}

// Code asks for a small function at a low temperature.
func (s *Service) Code(ctx context.Context) StepResult {
	return s.chatStep(ctx, StepCode, CodeSystem, CodeRequest, 0.3)
}

// Image generates one picture and returns its URL.
func (s *Service) Image(ctx context.Context) StepResult {
	return s.run(ctx, StepImage, ImagePrompt, func(r *StepResult) error {
		images, err := s.images.GenerateImage(ctx, ImagePrompt, 1)
		r.Images = images
		return err
	})
}

func (s *Service) chatStep(ctx context.Context, name, system, user string, temperature float32) StepResult {
	return s.run(ctx, name, user, func(r *StepResult) error {
		res, err := s.chat.Complete(ctx, domain.ChatRequest{
			Messages:    []domain.ChatMessage{domain.SystemMessage(system), domain.UserMessage(user)},
			Temperature: temperature,
			MaxTokens:   300,
		})
		r.Output = res.Content
		return err
	})
}

func (s *Service) run(ctx context.Context, name, prompt string, fn func(*StepResult) error) StepResult {
	start := time.Now()
	r := StepResult{Name: name, Prompt: prompt}
	r.Err = fn(&r)
	r.Duration = time.Since(start)

	if r.Err != nil {
		logpkg.FromContext(ctx).Warn("Quickstart step failed",
			zap.String("step", name),
			zap.Error(r.Err),
		)
	}
	return r
}
