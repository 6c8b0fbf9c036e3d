package driving

import (
	"context"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// ExtractionService derives structured assignment records from syllabus text.
type ExtractionService interface {
	// Extract sends the full document text to the model and returns the
	// validated record sequence in source order. A malformed model
	// response degrades to an empty slice (logged, nil error); a failed
	// model call surfaces as an error wrapping domain.ErrModelCall.
	Extract(ctx context.Context, text string) ([]domain.Assignment, error)
}
