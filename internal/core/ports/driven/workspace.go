package driven

import (
	"context"

	"github.com/courseloft/syllaboard/internal/core/domain"
)

// WorkspaceAPI provisions boards, columns, and items in the external
// project-management service. Every operation takes the bearer token of
// the authorized session; failures carry the provider's structured error
// payload as *domain.ExternalAPIError.
type WorkspaceAPI interface {
	// CreateBoard creates one new private board and returns its id.
	// Boards are never deduplicated: each call creates a fresh board.
	CreateBoard(ctx context.Context, name, token string) (string, error)

	// CreateColumns creates the fixed Due Date / Points / Category
	// columns in a single combined mutation and returns the resolved
	// role to column-id mapping.
	CreateColumns(ctx context.Context, boardID, token string) (domain.ColumnMap, error)

	// CreateItem creates one item for an assignment. Column values for
	// absent fields are omitted entirely, never sent as null.
	CreateItem(ctx context.Context, boardID string, cols domain.ColumnMap, a domain.Assignment, token string) (string, error)
}
