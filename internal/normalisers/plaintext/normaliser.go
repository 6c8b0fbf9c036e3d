package plaintext

import (
	"context"
	"strings"

	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
	}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md"}
}

// Decode passes the bytes through as UTF-8 text.
func (n *Normaliser) Decode(_ context.Context, content []byte) (string, error) {
	return strings.TrimSpace(string(content)), nil
}
