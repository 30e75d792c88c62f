package quickstart

import (
	"context"
	"errors"
	"testing"

	"github.com/timothywarner/ai900/internal/domain"
)

// --- Mocks ---

type mockText struct {
	req domain.TextRequest
	err error
}

func (m *mockText) CompleteText(_ context.Context, req domain.TextRequest) (string, error) {
	m.req = req
	if m.err != nil {
		return "", m.err
	}
	return "AI is...", nil
}

type mockChat struct {
	requests []domain.ChatRequest
}

func (m *mockChat) Complete(_ context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	m.requests = append(m.requests, req)
	return domain.ChatResult{Content: "answer"}, nil
}

type mockImages struct {
	n   int
	err error
}

func (m *mockImages) GenerateImage(_ context.Context, _ string, n int) ([]domain.GeneratedImage, error) {
	m.n = n
	if m.err != nil {
		return nil, m.err
	}
	return []domain.GeneratedImage{{URL: "https://img.example/robot.png"}}, nil
}

// --- Tests ---

func TestRun_AllSteps(t *testing.T) {
	text, chat, images := &mockText{}, &mockChat{}, &mockImages{}
	results := New(text, chat, images).Run(context.Background())

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	names := []string{StepText, StepChat, StepCode, StepImage}
	for i, r := range results {
		if r.Name != names[i] {
			t.Errorf("step %d: name %q, want %q", i, r.Name, names[i])
		}
		if r.Err != nil {
			t.Errorf("step %s: unexpected error %v", r.Name, r.Err)
		}
	}

	if text.req.MaxTokens != 150 || text.req.Temperature != 0.7 || text.req.TopP != 0.95 {
		t.Errorf("unexpected text request: %+v", text.req)
	}
	if chat.requests[0].Temperature != 0.7 || chat.requests[0].MaxTokens != 300 {
		t.Errorf("unexpected chat request: %+v", chat.requests[0])
	}
	if chat.requests[1].Temperature != 0.3 || chat.requests[1].Messages[1].Content != CodeRequest {
		t.Errorf("unexpected code request: %+v", chat.requests[1])
	}
	if images.n != 1 || results[3].Images[0].URL != "https://img.example/robot.png" {
		t.Errorf("unexpected image step: n=%d %+v", images.n, results[3].Images)
	}
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	boom := errors.New("deployment not found")
	results := New(&mockText{err: boom}, &mockChat{}, &mockImages{err: boom}).Run(context.Background())

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if !errors.Is(results[0].Err, boom) {
		t.Errorf("expected text step to fail, got %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Output != "answer" {
		t.Errorf("expected chat step to succeed: %+v", results[1])
	}
	if !errors.Is(results[3].Err, boom) {
		t.Errorf("expected image step to fail, got %v", results[3].Err)
	}
}

func TestRun_StopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(&mockText{}, &mockChat{}, &mockImages{}).Run(ctx)
	if len(results) != 0 {
		t.Errorf("expected no steps after cancel, got %d", len(results))
	}
}
