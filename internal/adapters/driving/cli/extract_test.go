package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
)

// mockDocument implements driving.DocumentService for testing.
type mockDocument struct {
	text string
	err  error
}

func (m *mockDocument) Decode(_ context.Context, _ []byte, _, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// mockExtraction implements driving.ExtractionService for testing.
type mockExtraction struct {
	assignments []domain.Assignment
	err         error
}

func (m *mockExtraction) Extract(_ context.Context, _ string) ([]domain.Assignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments, nil
}

func setupExtractTest(extraction *mockExtraction) func() {
	old := extractConfig
	extractConfig = &ExtractConfig{
		Document: &mockDocument{text: "syllabus text"},
		NewExtraction: func(string) (driving.ExtractionService, error) {
			return extraction, nil
		},
		APIKey: "configured-key",
	}
	return func() {
		extractConfig = old
	}
}

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract <file>", extractCmd.Use)
}

func TestExtractCmd_Executes(t *testing.T) {
	cleanup := setupExtractTest(&mockExtraction{
		assignments: []domain.Assignment{{ID: "a1", Title: "Essay"}},
	})
	defer cleanup()

	path := filepath.Join(t.TempDir(), "syllabus.txt")
	require.NoError(t, os.WriteFile(path, []byte("Week 1: essay due"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	var assignments []domain.Assignment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &assignments))
	require.Len(t, assignments, 1)
	assert.Equal(t, "Essay", assignments[0].Title)
}

func TestExtractCmd_MissingFile(t *testing.T) {
	cleanup := setupExtractTest(&mockExtraction{})
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"extract", filepath.Join(t.TempDir(), "missing.txt")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}

func TestExtractCmd_NotConfigured(t *testing.T) {
	old := extractConfig
	extractConfig = nil
	defer func() { extractConfig = old }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"extract", "syllabus.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}
