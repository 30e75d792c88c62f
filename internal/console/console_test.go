package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/timothywarner/ai900/internal/domain"
)

func TestPrinter_PlainOutputWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Header("RAG Demo")
	p.KV("Question", "What is Azure?")
	p.Error(errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes for a buffer, got %q", out)
	}
	for _, want := range []string{"RAG Demo", "Question: What is Azure?", "Error: boom", strings.Repeat("=", ruleWidth)} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Sources(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sources([]domain.ScoredDocument{
		{Document: domain.Document{ID: "doc2", Title: "Azure Machine Learning Capabilities"}, Similarity: 0.91234},
		{Document: domain.Document{ID: "doc1", Title: "Azure AI Services Overview"}, Similarity: 0.5},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "1. Azure Machine Learning Capabilities") || !strings.Contains(lines[0], "0.9123") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2. Azure AI Services Overview") {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestPrinter_Documents(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Documents([]domain.Document{{ID: "doc4", Title: "Responsible AI Principles", Category: "responsible-ai"}})

	if got := strings.TrimSpace(buf.String()); got != "[doc4] Responsible AI Principles (responsible-ai)" {
		t.Errorf("got %q", got)
	}
}
