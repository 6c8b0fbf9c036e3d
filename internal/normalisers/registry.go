package normalisers

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Registry selects a normaliser for a document by declared media type,
// falling back to the file extension. Browsers are inconsistent about
// the MIME type they attach to uploads, so both lookups matter.
type Registry struct {
	byMIME map[string]driven.Normaliser
	byExt  map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string]driven.Normaliser),
		byExt:  make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser under all its declared MIME types and
// extensions. Later registrations win on conflict.
func (r *Registry) Register(n driven.Normaliser) {
	for _, mime := range n.SupportedMIMETypes() {
		r.byMIME[strings.ToLower(mime)] = n
	}
	for _, ext := range n.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// Resolve returns the normaliser for a media type or file name.
// Fails with domain.ErrUnsupportedMediaType when nothing matches.
func (r *Registry) Resolve(mediaType, fileName string) (driven.Normaliser, error) {
	// Strip parameters such as "; charset=utf-8".
	mime := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	if n, ok := r.byMIME[mime]; ok {
		return n, nil
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		if n, ok := r.byExt[ext]; ok {
			return n, nil
		}
	}
	return nil, domain.ErrUnsupportedMediaType
}

// Decode resolves a normaliser and runs it in one step.
func (r *Registry) Decode(ctx context.Context, content []byte, mediaType, fileName string) (string, error) {
	n, err := r.Resolve(mediaType, fileName)
	if err != nil {
		return "", err
	}
	return n.Decode(ctx, content)
}
