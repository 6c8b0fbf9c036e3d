// Package pdf extracts text from PDF documents using the poppler
// pdftotext utility. The binary is invoked per document; a missing
// binary surfaces as a decode failure with install guidance.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner executes an external command and returns its stdout.
// Injectable so tests never depend on pdftotext being installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner CommandRunner
}

// New creates a new PDF normaliser using the system pdftotext binary.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Decode writes the bytes to a temp file and runs pdftotext over it.
// pdftotext reads from files only, so the temp round trip is required.
func (n *Normaliser) Decode(ctx context.Context, content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "syllaboard-*.pdf")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %w", domain.ErrDecode, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write temp file: %w", domain.ErrDecode, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close temp file: %w", domain.ErrDecode, err)
	}

	out, err := n.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: pdftotext not installed\n%s", domain.ErrDecode, InstallInstructions())
		}
		return "", fmt.Errorf("%w: pdftotext: %w", domain.ErrDecode, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// InstallInstructions describes how to install pdftotext per platform.
func InstallInstructions() string {
	lines := []string{
		"pdftotext is part of poppler:",
		"  macOS:  brew install poppler",
		"  Debian: apt install poppler-utils",
		"  Fedora: dnf install poppler-utils",
	}
	return strings.Join(lines, "\n")
}
