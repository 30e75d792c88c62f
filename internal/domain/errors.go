package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing knowledge base document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrZeroNormVector signals a vector with zero magnitude; cosine similarity is undefined for it.
	ErrZeroNormVector = errors.New("zero-norm vector")
	// ErrInvalidTopK signals a requested result count below one.
	ErrInvalidTopK = errors.New("top k must be at least 1")
	// ErrInvalidInput signals a malformed request to a service.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderError signals a failure reported by a hosted AI service.
	ErrProviderError = errors.New("ai provider error")
	// ErrEmptyCompletion signals a model response without any choices.
	ErrEmptyCompletion = errors.New("model returned no choices")
	// ErrOperationFailed signals a long-running analysis that ended in a failed state.
	ErrOperationFailed = errors.New("operation failed")
	// ErrUnauthenticated signals a request without a resolvable user.
	ErrUnauthenticated = errors.New("authentication required")
)
