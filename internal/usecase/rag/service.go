package rag

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
	logpkg "github.com/timothywarner/ai900/internal/logger"
)

// Answer is a grounded response together with the documents it was built from.
type Answer struct {
	Question string
	Text     string
	Sources  []domain.ScoredDocument
}

// Comparison holds the same question answered with and without retrieval.
type Comparison struct {
	Question string
	Baseline string
	Grounded Answer
}

// Service runs the retrieve-then-generate pipeline over a knowledge base.
type Service struct {
	kb        KnowledgeBase
	embed     Embedder
	ranker    *Ranker
	generator *Generator
	topK      int
}

// New creates a RAG service. topK is used when a caller passes k == 0.
func New(kb KnowledgeBase, embed Embedder, chat ChatCompleter, cfg GeneratorConfig, topK int) *Service {
	return &Service{
		kb:        kb,
		embed:     embed,
		ranker:    NewRanker(embed),
		generator: NewGenerator(chat, cfg),
		topK:      topK,
	}
}

// Documents returns the knowledge base contents.
func (s *Service) Documents() []domain.Document {
	return s.kb.All()
}

// Retrieve embeds the question and ranks the whole knowledge base against it.
func (s *Service) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredDocument, error) {
	if k == 0 {
		k = s.topK
	}

	q, err := s.embed.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	docs, err := s.ranker.Rank(ctx, q.Embedding, s.kb.All(), k)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	return docs, nil
}

// Query retrieves the top k documents for question and generates a grounded answer.
func (s *Service) Query(ctx context.Context, question string, k int) (Answer, error) {
	start := time.Now()
	logger := logpkg.FromContext(ctx)

	sources, err := s.Retrieve(ctx, question, k)
	if err != nil {
		return Answer{}, err
	}

	ids := make([]string, len(sources))
	for i, d := range sources {
		ids[i] = d.ID
	}
	logger.Debug("Documents retrieved", zap.Strings("ids", ids))

	text, err := s.generator.Generate(ctx, question, sources)
	if err != nil {
		return Answer{}, err
	}

	logger.Debug("RAG query answered",
		zap.Int("sources", len(sources)),
		zap.Duration("duration", time.Since(start)),
	)

	return Answer{Question: question, Text: text, Sources: sources}, nil
}

// Compare answers question once without retrieval and once through Query.
func (s *Service) Compare(ctx context.Context, question string, k int) (Comparison, error) {
	baseline, err := s.generator.Baseline(ctx, question)
	if err != nil {
		return Comparison{}, err
	}

	grounded, err := s.Query(ctx, question, k)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{Question: question, Baseline: baseline, Grounded: grounded}, nil
}
