package driving

import "context"

// DocumentService turns uploaded document bytes into plain text.
type DocumentService interface {
	// Decode selects a decoder by media type or file extension and
	// returns the document's text. Unrecognised input fails with
	// domain.ErrUnsupportedMediaType, corrupt input with domain.ErrDecode.
	Decode(ctx context.Context, content []byte, mediaType, fileName string) (string, error)
}
