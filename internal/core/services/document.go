package services

import (
	"context"
	"fmt"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService decodes uploaded syllabus documents into plain text.
type DocumentService struct {
	registry driven.NormaliserRegistry
}

// NewDocumentService creates a new document service.
func NewDocumentService(registry driven.NormaliserRegistry) *DocumentService {
	return &DocumentService{registry: registry}
}

// Decode turns document bytes into text via the normaliser registry.
func (s *DocumentService) Decode(ctx context.Context, content []byte, mediaType, fileName string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}

	text, err := s.registry.Decode(ctx, content, mediaType, fileName)
	if err != nil {
		return "", fmt.Errorf("decode %q: %w", fileName, err)
	}

	logger.Debug("decoded %q (%s): %d bytes -> %d chars", fileName, mediaType, len(content), len(text))
	return text, nil
}
