package primary

import (
	"context"

	"github.com/example/deck/internal/models"
)

// DragService interprets drag gestures delivered by the UI. At most one
// card is active at a time; a drag start while already dragging is ignored.
type DragService interface {
	// StartDrag begins a session for the given card. Returns false if a
	// session is already active or the card is unknown.
	StartDrag(cardID string) bool

	// DropOnColumn ends the session by dropping on a column body: the
	// card moves to the end of that column.
	DropOnColumn(ctx context.Context, columnID string) (*models.Card, error)

	// DropOnCard ends the session by dropping on another card: same-column
	// targets reorder, cross-column targets move the card to the target's
	// column at the target's index.
	DropOnCard(ctx context.Context, targetCardID string) (*models.Card, error)

	// CancelDrag ends the session without mutating anything.
	CancelDrag()

	// Dragging returns the active card id, or "" when idle.
	Dragging() string
}
