package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// fakeNormaliser is a test double registered under fixed types.
type fakeNormaliser struct {
	mimes []string
	exts  []string
	text  string
}

func (f *fakeNormaliser) SupportedMIMETypes() []string  { return f.mimes }
func (f *fakeNormaliser) SupportedExtensions() []string { return f.exts }
func (f *fakeNormaliser) Decode(_ context.Context, _ []byte) (string, error) {
	return f.text, nil
}

func TestRegistry_Resolve(t *testing.T) {
	docx := &fakeNormaliser{
		mimes: []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		exts:  []string{".docx"},
		text:  "docx text",
	}
	reg := NewRegistry()
	reg.Register(docx)

	tests := []struct {
		name      string
		mediaType string
		fileName  string
		wantErr   error
	}{
		{
			name:      "exact mime match",
			mediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		{
			name:      "mime with charset parameter",
			mediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document; charset=utf-8",
		},
		{
			name:     "extension fallback",
			fileName: "Syllabus.DOCX",
		},
		{
			name:      "unknown type",
			mediaType: "image/png",
			fileName:  "photo.png",
			wantErr:   domain.ErrUnsupportedMediaType,
		},
		{
			name:    "no mime and no extension",
			wantErr: domain.ErrUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := reg.Resolve(tt.mediaType, tt.fileName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, docx, n.(*fakeNormaliser))
		})
	}
}

func TestRegistry_Decode(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeNormaliser{mimes: []string{"text/plain"}, text: "hello"})

	text, err := reg.Decode(context.Background(), []byte("hello"), "text/plain", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = reg.Decode(context.Background(), nil, "application/pdf", "a.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaType)
}
