package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/courseloft/syllaboard/internal/core/ports/driving"
)

// ExtractConfig holds the wiring for the extract command.
type ExtractConfig struct {
	Document driving.DocumentService

	// NewExtraction builds the extraction service once an API key is
	// known. Deferred so the command can prompt for a missing key.
	NewExtraction func(apiKey string) (driving.ExtractionService, error)

	// APIKey is the configured model API key; when empty the command
	// prompts on a terminal.
	APIKey string
}

// extractConfig holds the current extract wiring.
var extractConfig *ExtractConfig

// SetExtractConfig sets the wiring for the extract command.
func SetExtractConfig(config *ExtractConfig) {
	extractConfig = config
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract assignments from a syllabus document",
	Long: `Decodes a syllabus document (.docx, .pdf, .txt, .md), extracts the
assignments with the configured model, and prints them as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractConfig == nil || extractConfig.Document == nil || extractConfig.NewExtraction == nil {
		return errors.New("extraction not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	apiKey := extractConfig.APIKey
	if apiKey == "" {
		apiKey, err = promptSecret(cmd, "OpenAI API key: ")
		if err != nil {
			return err
		}
	}

	extraction, err := extractConfig.NewExtraction(apiKey)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	text, err := extractConfig.Document.Decode(ctx, content, "", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	assignments, err := extraction.Extract(ctx, text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	out, err := json.MarshalIndent(assignments, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

// promptSecret reads a secret without echo. Refuses to prompt when
// stdin is not a terminal so scripted runs fail fast instead of hanging.
func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no API key configured and stdin is not a terminal")
	}

	cmd.Print(prompt)
	secret, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	if len(secret) == 0 {
		return "", errors.New("empty API key")
	}
	return string(secret), nil
}
