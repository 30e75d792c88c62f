package knowledge

import (
	"errors"
	"testing"

	"github.com/timothywarner/ai900/internal/domain"
)

func TestNewDefault_FiveDocuments(t *testing.T) {
	s := NewDefault()

	if s.Len() != 5 {
		t.Fatalf("expected 5 documents, got %d", s.Len())
	}

	wantIDs := []string{"doc1", "doc2", "doc3", "doc4", "doc5"}
	for i, d := range s.All() {
		if d.ID != wantIDs[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantIDs[i], d.ID)
		}
		if d.Title == "" || d.Content == "" || d.Category == "" {
			t.Errorf("%s: expected all fields populated, got %+v", d.ID, d)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := NewDefault()

	docs := s.All()
	docs[0].Title = "mutated"

	if got := s.All()[0].Title; got != "Azure AI Services Overview" {
		t.Errorf("store was mutated through All(): %q", got)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []domain.Document{{ID: "a", Title: "A"}}
	s := New(in)
	in[0].Title = "changed"

	d, err := s.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "A" {
		t.Errorf("expected store to keep its own copy, got %q", d.Title)
	}
}

func TestGet(t *testing.T) {
	s := NewDefault()

	d, err := s.Get("doc4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Category != "responsible-ai" {
		t.Errorf("expected category responsible-ai, got %q", d.Category)
	}

	_, err = s.Get("doc9")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
