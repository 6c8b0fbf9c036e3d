package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/logger"
)

// syllabusTextRequest is the JSON alternative to a multipart upload.
type syllabusTextRequest struct {
	Text string `json:"text"`
}

// syllabusResponse carries the extracted records.
type syllabusResponse struct {
	Assignments []domain.Assignment `json:"assignments"`
}

// handleSyllabus accepts a syllabus as a multipart file upload or as a
// JSON text body and returns the extracted assignment records.
func (s *Server) handleSyllabus(c echo.Context) error {
	text, err := s.syllabusText(c)
	if err != nil {
		return respondError(c, err)
	}
	if strings.TrimSpace(text) == "" {
		return respondError(c, fmt.Errorf("%w: empty syllabus", domain.ErrInvalidInput))
	}

	assignments, err := s.extraction.Extract(c.Request().Context(), text)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, syllabusResponse{Assignments: assignments})
}

// syllabusText resolves the document text from either request shape.
func (s *Server) syllabusText(c echo.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		// No multipart file: fall back to a JSON text body.
		var req syllabusTextRequest
		if err := c.Bind(&req); err != nil {
			return "", fmt.Errorf("%w: expected a file upload or a text body", domain.ErrInvalidInput)
		}
		return req.Text, nil
	}

	if file.Size > MaxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxUploadBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(content)) > MaxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxUploadBytes)
	}

	return s.documents.Decode(c.Request().Context(),
		content, file.Header.Get("Content-Type"), file.Filename)
}

// handleOAuthStart begins the workspace OAuth flow and redirects the
// browser to the provider's authorization page.
func (s *Server) handleOAuthStart(c echo.Context) error {
	authURL, err := s.credentials.Start(c.Request().Context(), sessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// handleOAuthCallback finishes the flow: validates state, exchanges the
// code, and sends the browser back to the app.
func (s *Server) handleOAuthCallback(c echo.Context) error {
	if providerErr := c.QueryParam("error"); providerErr != "" {
		logger.Warn("oauth flow denied by provider: %s", providerErr)
		return c.Redirect(http.StatusFound, "/?monday=denied")
	}

	_, err := s.credentials.Complete(c.Request().Context(),
		sessionID(c), c.QueryParam("code"), c.QueryParam("state"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(http.StatusFound, "/?monday=connected")
}

// statusResponse answers the authorization predicate.
type statusResponse struct {
	Authorized bool `json:"authorized"`
}

// handleStatus reports whether the session holds a usable token.
func (s *Server) handleStatus(c echo.Context) error {
	authorized := s.credentials.IsAuthorized(c.Request().Context(), sessionID(c))
	return c.JSON(http.StatusOK, statusResponse{Authorized: authorized})
}

// syncRequest carries the records to push to the workspace.
type syncRequest struct {
	CourseName  string              `json:"courseName"`
	Assignments []domain.Assignment `json:"assignments"`
}

// syncItemResult is the wire shape of one item outcome.
type syncItemResult struct {
	AssignmentID string `json:"assignmentId"`
	ItemID       string `json:"itemId,omitempty"`
	Error        string `json:"error,omitempty"`
}

// syncResponse summarises one provisioning run.
type syncResponse struct {
	BoardID string           `json:"boardId"`
	Items   []syncItemResult `json:"items"`
	Failed  int              `json:"failed"`
}

// handleSync provisions a board from the submitted records.
func (s *Server) handleSync(c echo.Context) error {
	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
	}

	creds, err := s.credentials.Credentials(c.Request().Context(), sessionID(c))
	if err != nil {
		return respondError(c, err)
	}

	report, err := s.boardSync.Sync(c.Request().Context(), req.CourseName, req.Assignments, creds)
	if err != nil {
		return respondError(c, err)
	}

	resp := syncResponse{
		BoardID: report.BoardID,
		Items:   make([]syncItemResult, len(report.Items)),
		Failed:  report.FailedCount(),
	}
	for i, item := range report.Items {
		resp.Items[i] = syncItemResult{
			AssignmentID: item.AssignmentID,
			ItemID:       item.ItemID,
		}
		if item.Err != nil {
			resp.Items[i].Error = item.Err.Error()
		}
	}

	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, resp)
}
