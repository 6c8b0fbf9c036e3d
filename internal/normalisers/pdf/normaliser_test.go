package pdf

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestSupportedTypes(t *testing.T) {
	n := New()
	assert.Equal(t, []string{"application/pdf"}, n.SupportedMIMETypes())
	assert.Equal(t, []string{".pdf"}, n.SupportedExtensions())
}

func TestDecode(t *testing.T) {
	n := NewWithRunner(&mockRunner{output: []byte("  CS 101\nHW1 due 2024-09-01\n")})

	text, err := n.Decode(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "CS 101\nHW1 due 2024-09-01", text)
}

func TestDecode_RunnerFailure(t *testing.T) {
	n := NewWithRunner(&mockRunner{err: errors.New("exit status 1")})

	_, err := n.Decode(context.Background(), []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestDecode_BinaryMissing(t *testing.T) {
	n := NewWithRunner(&mockRunner{
		err: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound},
	})

	_, err := n.Decode(context.Background(), []byte("%PDF-1.4"))
	require.ErrorIs(t, err, domain.ErrDecode)
	assert.Contains(t, err.Error(), "pdftotext not installed")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}
