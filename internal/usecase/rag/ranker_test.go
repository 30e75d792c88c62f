package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/timothywarner/ai900/internal/domain"
)

func TestRank_OrdersDescending(t *testing.T) {
	emb := &mapEmbedder{vectors: map[string][]float32{
		"far":   {0, 1},
		"close": {1, 0.1},
		"mid":   {1, 1},
	}}
	docs := []domain.Document{doc("a", "far"), doc("b", "close"), doc("c", "mid")}

	got, err := NewRanker(emb).Rank(context.Background(), []float32{1, 0}, docs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"b", "c", "a"}
	for i, d := range got {
		if d.ID != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], d.ID)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("scores not descending at %d: %v > %v", i, got[i].Similarity, got[i-1].Similarity)
		}
	}
}

func TestRank_TruncatesToK(t *testing.T) {
	emb := &mapEmbedder{fallback: []float32{1, 2}}
	docs := []domain.Document{doc("a", "x"), doc("b", "y"), doc("c", "z")}

	got, err := NewRanker(emb).Rank(context.Background(), []float32{1, 1}, docs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
}

func TestRank_KLargerThanDocs(t *testing.T) {
	emb := &mapEmbedder{fallback: []float32{1, 2}}
	docs := []domain.Document{doc("a", "x"), doc("b", "y")}

	got, err := NewRanker(emb).Rank(context.Background(), []float32{1, 1}, docs, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected all 2 documents, got %d", len(got))
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	emb := &mapEmbedder{fallback: []float32{3, 4}}
	docs := []domain.Document{doc("first", "x"), doc("second", "y"), doc("third", "z")}

	got, err := NewRanker(emb).Rank(context.Background(), []float32{1, 0}, docs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestRank_InvalidK(t *testing.T) {
	for _, k := range []int{0, -1} {
		_, err := NewRanker(&mapEmbedder{}).Rank(context.Background(), []float32{1}, nil, k)
		if !errors.Is(err, domain.ErrInvalidTopK) {
			t.Errorf("k=%d: expected ErrInvalidTopK, got %v", k, err)
		}
	}
}

func TestRank_EmptyKnowledgeBase(t *testing.T) {
	got, err := NewRanker(&mapEmbedder{}).Rank(context.Background(), []float32{1}, nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestRank_EmbedsEveryDocumentEachCall(t *testing.T) {
	emb := &mapEmbedder{fallback: []float32{1, 0}}
	docs := []domain.Document{doc("a", "x"), doc("b", "y")}
	r := NewRanker(emb)

	for range 2 {
		if _, err := r.Rank(context.Background(), []float32{1, 0}, docs, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if emb.calls != 4 {
		t.Errorf("expected 4 embed calls, got %d", emb.calls)
	}
}

func TestRank_PropagatesErrors(t *testing.T) {
	embErr := errors.New("embedding down")
	_, err := NewRanker(&mapEmbedder{err: embErr}).
		Rank(context.Background(), []float32{1}, []domain.Document{doc("a", "x")}, 1)
	if !errors.Is(err, embErr) {
		t.Fatalf("expected embed error, got %v", err)
	}

	_, err = NewRanker(&mapEmbedder{fallback: []float32{1, 2, 3}}).
		Rank(context.Background(), []float32{1}, []domain.Document{doc("a", "x")}, 1)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}
}
