package knowledge

import (
	"fmt"

	"github.com/timothywarner/ai900/internal/domain"
)

// Store is the fixed, in-memory knowledge base used by the RAG pipeline.
// It never changes after construction.
type Store struct {
	docs []domain.Document
}

// New creates a store over the given documents. The slice is copied.
func New(docs []domain.Document) *Store {
	cp := make([]domain.Document, len(docs))
	copy(cp, docs)
	return &Store{docs: cp}
}

// NewDefault creates a store holding the Azure AI course knowledge base.
func NewDefault() *Store {
	return New(defaultDocuments)
}

// All returns every document in definition order. Callers get their own copy.
func (s *Store) All() []domain.Document {
	cp := make([]domain.Document, len(s.docs))
	copy(cp, s.docs)
	return cp
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (domain.Document, error) {
	for _, d := range s.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Document{}, fmt.Errorf("get %q: %w", id, domain.ErrDocumentNotFound)
}

// Len returns the number of documents.
func (s *Store) Len() int {
	return len(s.docs)
}

var defaultDocuments = []domain.Document{
	{
		ID:       "doc1",
		Title:    "Azure AI Services Overview",
		Category: "overview",
		Content: "Azure AI Services (formerly Cognitive Services) provides pre-built AI models through APIs. " +
			"Key services include Vision (image analysis, OCR, face detection), Language (sentiment analysis, " +
			"entity recognition, translation), Speech (speech-to-text, text-to-speech), and Decision " +
			"(anomaly detection, content moderation). These services require no ML expertise and can be " +
			"integrated via REST APIs or SDKs.",
	},
	{
		ID:       "doc2",
		Title:    "Azure Machine Learning Capabilities",
		Category: "machine-learning",
		Content: "Azure Machine Learning is a cloud platform for training, deploying, and managing ML models. " +
			"It offers Automated ML for code-free model training, Designer for visual workflows, and Notebooks " +
			"for code-first development. Key features include MLOps for model lifecycle management, responsible " +
			"AI dashboard, and managed endpoints for deployment. Supports popular frameworks like TensorFlow, " +
			"PyTorch, and scikit-learn.",
	},
	{
		ID:       "doc3",
		Title:    "Azure OpenAI Service",
		Category: "generative-ai",
		Content: "Azure OpenAI Service provides access to OpenAI's models including GPT-4, GPT-3.5, DALL-E 3, " +
			"and Embeddings. It offers enterprise security, compliance, and responsible AI features. Key " +
			"capabilities include text generation, code generation, summarization, and image creation. Supports " +
			"fine-tuning for domain-specific tasks. Integrated with Azure's security and compliance frameworks " +
			"including private endpoints and managed identity.",
	},
	{
		ID:       "doc4",
		Title:    "Responsible AI Principles",
		Category: "responsible-ai",
		Content: "Microsoft's Responsible AI framework includes six principles: Fairness (AI systems should treat " +
			"everyone fairly), Reliability & Safety (AI should perform reliably and safely), Privacy & Security " +
			"(AI should be secure and respect privacy), Inclusiveness (AI should empower everyone), Transparency " +
			"(AI systems should be understandable), and Accountability (People should be accountable for AI " +
			"systems). Azure provides tools like Fairness Dashboard and Model Interpretability.",
	},
	{
		ID:       "doc5",
		Title:    "Computer Vision Applications",
		Category: "computer-vision",
		Content: "Azure Computer Vision enables image analysis, OCR, and spatial analysis. Common applications " +
			"include: inventory management using object detection, accessibility features using image " +
			"descriptions, document digitization using OCR, safety monitoring using spatial analysis, and " +
			"quality control in manufacturing. Custom Vision allows training models for specific domains " +
			"without ML expertise.",
	},
}
