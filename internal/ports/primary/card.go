package primary

import (
	"context"

	"github.com/example/deck/internal/models"
)

// CardService manages cards and their tag associations.
type CardService interface {
	// CreateCard appends a card to a column (position = max sibling + 1).
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)

	// UpdateCard applies a partial edit (title and/or description).
	UpdateCard(ctx context.Context, req UpdateCardRequest) (*models.Card, error)

	// MoveCard moves a card to a column and index. Same-column moves
	// reorder; cross-column moves re-parent. Affected sibling scopes are
	// renumbered to 0..N-1. A negative index appends.
	MoveCard(ctx context.Context, req MoveCardRequest) (*models.Card, error)

	// DeleteCard deletes a card.
	DeleteCard(ctx context.Context, id string) error

	// AddTagToCard attaches a tag; attaching an already attached tag is a
	// no-op.
	AddTagToCard(ctx context.Context, cardID, tagID string) (*models.Card, error)

	// RemoveTagFromCard detaches a tag; detaching an absent tag is a no-op.
	RemoveTagFromCard(ctx context.Context, cardID, tagID string) (*models.Card, error)
}

// CreateCardRequest carries the fields for a new card.
type CreateCardRequest struct {
	ColumnID    string
	Title       string
	Description string
}

// UpdateCardRequest is a partial edit; nil fields are left untouched.
type UpdateCardRequest struct {
	ID          string
	Title       *string
	Description *string
}

// MoveCardRequest moves a card to ColumnID at display index ToIndex.
// ToIndex < 0 appends to the destination column.
type MoveCardRequest struct {
	ID       string
	ColumnID string
	ToIndex  int
}
