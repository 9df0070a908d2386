package primary

import (
	"context"

	"github.com/example/deck/internal/models"
)

// ColumnService manages columns within the selected board.
type ColumnService interface {
	// CreateColumn appends a column to a board (position = max sibling + 1).
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)

	// UpdateColumn renames a column.
	UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*models.Column, error)

	// MoveColumn reorders a column within its board to the given index.
	// Sibling positions are renumbered to 0..N-1.
	MoveColumn(ctx context.Context, req MoveColumnRequest) (*models.Column, error)

	// DeleteColumn deletes a column and cascades to its cards.
	DeleteColumn(ctx context.Context, id string) error
}

// CreateColumnRequest carries the fields for a new column.
type CreateColumnRequest struct {
	BoardID string
	Title   string
}

// UpdateColumnRequest renames an existing column.
type UpdateColumnRequest struct {
	ID    string
	Title string
}

// MoveColumnRequest moves a column to a display index within its board.
type MoveColumnRequest struct {
	ID      string
	ToIndex int
}
