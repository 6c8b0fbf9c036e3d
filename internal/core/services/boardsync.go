package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.BoardSyncService = (*SyncEngine)(nil)

// DefaultItemConcurrency caps how many item-creation requests run at
// once. Large syllabi would otherwise fan out one request per record
// and trip the provider's rate limits.
const DefaultItemConcurrency = 8

// SyncEngine provisions a board, its fixed columns, and one item per
// assignment in the external workspace.
type SyncEngine struct {
	workspace   driven.WorkspaceAPI
	concurrency int
}

// NewSyncEngine creates a new sync engine. concurrency <= 0 selects
// DefaultItemConcurrency.
func NewSyncEngine(workspace driven.WorkspaceAPI, concurrency int) *SyncEngine {
	if concurrency <= 0 {
		concurrency = DefaultItemConcurrency
	}
	return &SyncEngine{workspace: workspace, concurrency: concurrency}
}

// Sync runs the strictly ordered provisioning steps: board, then the
// combined column mutation, then items. Items run concurrently under
// the engine's cap; each record gets its own result so one rejected
// item never masks the others. Board or column failure aborts the run
// with no compensation of what was already created.
func (e *SyncEngine) Sync(ctx context.Context, courseName string, records []domain.Assignment, creds *domain.Credentials) (*domain.SyncReport, error) {
	if courseName == "" {
		return nil, fmt.Errorf("%w: missing course name", domain.ErrInvalidInput)
	}
	if creds == nil || !creds.IsAuthorized() {
		return nil, fmt.Errorf("%w: workspace not connected", domain.ErrUnauthenticated)
	}
	token := creds.AccessToken

	boardID, err := e.workspace.CreateBoard(ctx, courseName, token)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	logger.Debug("created board %s for course %q", boardID, courseName)

	columns, err := e.workspace.CreateColumns(ctx, boardID, token)
	if err != nil {
		return nil, fmt.Errorf("create columns: %w", err)
	}
	if !columns.Complete() {
		return nil, fmt.Errorf("create columns: unresolved column ids for board %s", boardID)
	}

	results := make([]domain.ItemResult, len(records))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			itemID, err := e.workspace.CreateItem(ctx, boardID, columns, record, token)
			results[i] = domain.ItemResult{
				AssignmentID: record.ID,
				ItemID:       itemID,
				Err:          err,
			}
			if err != nil {
				logger.Warn("item %q failed: %v", record.Title, err)
			}
			return nil
		})
	}
	// Workers record failures per item and never return an error.
	_ = g.Wait()

	report := &domain.SyncReport{
		BoardID: boardID,
		Columns: columns,
		Items:   results,
	}
	logger.Info("synced course %q to board %s: %d items, %d failed",
		courseName, boardID, len(records), report.FailedCount())
	return report, nil
}
