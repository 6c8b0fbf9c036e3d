package driven

import "context"

// Normaliser decodes one document format into plain text.
// Each normaliser declares the MIME types and file extensions it handles;
// selection happens in the normaliser registry.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lower-case file extensions
	// (including the dot) this normaliser handles.
	SupportedExtensions() []string

	// Decode extracts the plain text of the document. Corrupt input
	// fails with an error wrapping domain.ErrDecode.
	Decode(ctx context.Context, content []byte) (string, error)
}

// NormaliserRegistry resolves a normaliser for an upload and runs it.
// Selection is by declared media type first, file extension second;
// no match fails with domain.ErrUnsupportedMediaType.
type NormaliserRegistry interface {
	Decode(ctx context.Context, content []byte, mediaType, fileName string) (string, error)
}
