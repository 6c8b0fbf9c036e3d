package driving

import (
	"context"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// BoardSyncService provisions a workspace board from extracted records.
type BoardSyncService interface {
	// Sync creates a new board named after the course, its three fixed
	// columns, then one item per record. Board or column failure aborts
	// the run; item failures are collected per record in the report so
	// partial success stays observable. An empty batch still creates
	// the board and columns.
	Sync(ctx context.Context, courseName string, records []domain.Assignment, creds *domain.Credentials) (*domain.SyncReport, error)
}
