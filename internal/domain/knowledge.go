package domain

// Document is one knowledge base entry.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// ScoredDocument pairs a document with its similarity to a query.
type ScoredDocument struct {
	Document
	Similarity float64 `json:"similarity"`
}
