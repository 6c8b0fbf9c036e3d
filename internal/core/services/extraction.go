package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/logger"
)

// Ensure ExtractionEngine implements the interface.
var _ driving.ExtractionService = (*ExtractionEngine)(nil)

// DefaultMaxTokens bounds the model response. Generous enough that a
// long assignment list does not come back as truncated JSON.
const DefaultMaxTokens = 1024

// extractionInstruction fixes the exact output shape of the model call.
const extractionInstruction = `You are an assistant that reads university course syllabi and extracts an array of assignments. Respond ONLY with valid JSON in the following format: [{"id": string, "title": string, "dueDate": string | null, "points": number | null, "category": string | null}] where dueDate is in ISO 8601 YYYY-MM-DD format if available. If a field is missing set it to null. Do NOT include markdown fences. Do NOT wrap the JSON in any other text.`

// Fence markup the model emits despite being told not to.
var (
	leadingFence  = regexp.MustCompile(`(?i)^` + "```" + `[a-z]*\s*`)
	trailingFence = regexp.MustCompile(`(?i)` + "```" + `\s*$`)
)

// ExtractionEngine derives assignment records from syllabus text via a
// single structured model call with a tolerant response parse.
type ExtractionEngine struct {
	llm       driven.LLMService
	maxTokens int
}

// NewExtractionEngine creates a new extraction engine. maxTokens <= 0
// selects DefaultMaxTokens.
func NewExtractionEngine(llm driven.LLMService, maxTokens int) *ExtractionEngine {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ExtractionEngine{llm: llm, maxTokens: maxTokens}
}

// Extract sends the document text to the model and parses the reply.
// A reply that is not usable JSON degrades to an empty batch; a failed
// model call propagates so the caller can tell the two apart.
func (e *ExtractionEngine) Extract(ctx context.Context, text string) ([]domain.Assignment, error) {
	messages := []driven.ChatMessage{
		{Role: "system", Content: extractionInstruction},
		{Role: "user", Content: "Syllabus text:\n\n" + text},
	}

	raw, err := e.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   e.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("extract assignments: %w", err)
	}

	records, ok := parseModelResponse(raw)
	if !ok {
		logger.Warn("model response is not an assignment array, returning empty batch: %.200s", raw)
		return []domain.Assignment{}, nil
	}

	for i := range records {
		backfillRecord(&records[i])
	}

	logger.Debug("extracted %d assignments with %s", len(records), e.llm.ModelName())
	return records, nil
}

// parseModelResponse applies the tolerant parse: trim, strip fences,
// then accept either a top-level array or an object carrying an
// array-valued "assignments" field.
func parseModelResponse(raw string) ([]domain.Assignment, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var records []domain.Assignment
	if err := json.Unmarshal([]byte(cleaned), &records); err == nil {
		if records == nil {
			// The literal "null" parses into a nil slice.
			return nil, false
		}
		return records, true
	}

	var wrapper struct {
		Assignments []domain.Assignment `json:"assignments"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil && wrapper.Assignments != nil {
		return wrapper.Assignments, true
	}

	return nil, false
}

// backfillRecord fills the fields the contract requires to be present
// and drops values the contract forbids.
func backfillRecord(a *domain.Assignment) {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.New().String()
	}
	if strings.TrimSpace(a.Title) == "" {
		a.Title = domain.UntitledAssignment
	}
	if a.Points != nil && *a.Points < 0 {
		a.Points = nil
	}
}
