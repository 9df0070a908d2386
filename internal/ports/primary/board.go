// Package primary defines the primary ports (driving interfaces) for deck.
// The UI layer calls these; implementations live in internal/app.
package primary

import (
	"context"

	"github.com/example/deck/internal/models"
)

// BoardService manages boards and board selection.
//
// Mutations apply optimistically and return the locally computed entity;
// remote persistence happens asynchronously. Only validation failures are
// returned as errors; remote failures are reverted and surfaced through
// the Notifier port.
type BoardService interface {
	// CreateBoard creates an empty board.
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)

	// UpdateBoard renames a board.
	UpdateBoard(ctx context.Context, req UpdateBoardRequest) (*models.Board, error)

	// DeleteBoard deletes a board and cascades to its columns and cards.
	// Deleting the currently selected board clears the selection.
	DeleteBoard(ctx context.Context, id string) error

	// SelectBoard loads a board's columns and cards into the snapshot and
	// marks it current. This is a bulk fetch: it blocks and toggles
	// IsLoading for its duration.
	SelectBoard(ctx context.Context, id string) (*models.Board, error)

	// DeselectBoard clears the current board, columns and cards.
	DeselectBoard(ctx context.Context)

	// ListBoards fetches all boards from the remote store into the
	// snapshot and returns them. Bulk fetch, toggles IsLoading.
	ListBoards(ctx context.Context) ([]*models.Board, error)
}

// CreateBoardRequest carries the fields for a new board.
type CreateBoardRequest struct {
	Title string
}

// UpdateBoardRequest renames an existing board.
type UpdateBoardRequest struct {
	ID    string
	Title string
}
