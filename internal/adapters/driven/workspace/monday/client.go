// Package monday provisions boards, columns, and items through the
// monday.com GraphQL API.
package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WorkspaceAPI = (*Client)(nil)

// Default configuration values. The rate limit stays below monday.com's
// published complexity limits.
const (
	DefaultEndpoint          = "https://api.monday.com/v2"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
)

// Config holds configuration for the monday.com client.
type Config struct {
	// Endpoint is the GraphQL endpoint (default: https://api.monday.com/v2).
	Endpoint string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained client-side rate limit.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int
}

// Client is the monday.com workspace API client.
type Client struct {
	transport *transport
	limiter   *rate.Limiter
}

// NewClient creates a new monday.com client.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	return &Client{
		transport: newTransport(cfg.Endpoint, cfg.Timeout),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// flexibleID decodes a GraphQL id that providers serialize either as a
// string or as a bare number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", data)
	}
	*f = flexibleID(n.String())
	return nil
}

const createBoardMutation = `mutation ($name: String!) {
  create_board (board_name: $name, board_kind: private) { id }
}`

// CreateBoard creates one new private board and returns its id.
func (c *Client) CreateBoard(ctx context.Context, name, token string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	data, err := c.transport.execute(ctx, createBoardMutation, map[string]any{"name": name}, token)
	if err != nil {
		return "", err
	}

	var result struct {
		CreateBoard struct {
			ID flexibleID `json:"id"`
		} `json:"create_board"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode create_board: %w", err)
	}
	if result.CreateBoard.ID == "" {
		return "", fmt.Errorf("create_board returned no id")
	}
	return string(result.CreateBoard.ID), nil
}

// createColumnsMutation creates all three columns in one request; the
// aliases map the provider ids back to logical roles.
const createColumnsMutation = `mutation ($board: ID!) {
  dateCol: create_column(board_id: $board, title: "Due Date", column_type: date) { id }
  pointsCol: create_column(board_id: $board, title: "Points", column_type: numbers) { id }
  categoryCol: create_column(board_id: $board, title: "Category", column_type: text) { id }
}`

// CreateColumns creates the fixed column set and returns the role mapping.
func (c *Client) CreateColumns(ctx context.Context, boardID, token string) (domain.ColumnMap, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	data, err := c.transport.execute(ctx, createColumnsMutation, map[string]any{"board": boardID}, token)
	if err != nil {
		return nil, err
	}

	var result struct {
		DateCol     struct{ ID flexibleID `json:"id"` } `json:"dateCol"`
		PointsCol   struct{ ID flexibleID `json:"id"` } `json:"pointsCol"`
		CategoryCol struct{ ID flexibleID `json:"id"` } `json:"categoryCol"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode create_column: %w", err)
	}

	cols := domain.ColumnMap{
		domain.ColumnDueDate:  string(result.DateCol.ID),
		domain.ColumnPoints:   string(result.PointsCol.ID),
		domain.ColumnCategory: string(result.CategoryCol.ID),
	}
	if !cols.Complete() {
		return nil, fmt.Errorf("create_column returned incomplete ids: %v", cols)
	}
	return cols, nil
}

const createItemMutation = `mutation ($board: ID!, $name: String!, $values: JSON!) {
  create_item(board_id: $board, item_name: $name, column_values: $values) { id }
}`

// CreateItem creates one item for an assignment. Absent fields are left
// out of the column-value payload entirely, never sent as null.
func (c *Client) CreateItem(ctx context.Context, boardID string, cols domain.ColumnMap, a domain.Assignment, token string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	values := columnValues(cols, a)
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode column values: %w", err)
	}

	data, err := c.transport.execute(ctx, createItemMutation, map[string]any{
		"board":  boardID,
		"name":   a.Title,
		"values": string(encoded),
	}, token)
	if err != nil {
		return "", err
	}

	var result struct {
		CreateItem struct {
			ID flexibleID `json:"id"`
		} `json:"create_item"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode create_item: %w", err)
	}
	return string(result.CreateItem.ID), nil
}

// columnValues builds the provider payload for one assignment.
func columnValues(cols domain.ColumnMap, a domain.Assignment) map[string]any {
	values := make(map[string]any)
	if a.HasDueDate() {
		values[cols[domain.ColumnDueDate]] = map[string]string{"date": *a.DueDate}
	}
	if a.HasPoints() {
		values[cols[domain.ColumnPoints]] = *a.Points
	}
	if a.HasCategory() {
		values[cols[domain.ColumnCategory]] = *a.Category
	}
	return values
}
