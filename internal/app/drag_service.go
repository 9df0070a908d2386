package app

import (
	"context"
	"sync"

	"github.com/example/deck/internal/core/drag"
	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/primary"
)

// DragServiceImpl implements primary.DragService on top of the pure drag
// classifier and the card service.
type DragServiceImpl struct {
	engine *Engine
	cards  primary.CardService

	mu      sync.Mutex
	session drag.Session
}

var _ primary.DragService = (*DragServiceImpl)(nil)

// NewDragService creates a DragService delegating moves to cards.
func NewDragService(engine *Engine, cards primary.CardService) *DragServiceImpl {
	return &DragServiceImpl{engine: engine, cards: cards}
}

// StartDrag begins a session for cardID. Unknown cards and starts during
// an active session are rejected.
func (s *DragServiceImpl) StartDrag(cardID string) bool {
	snap := s.engine.Store().Snapshot()
	if _, ok := snap.Cards[cardID]; !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Start(cardID)
}

// DropOnColumn moves the dragged card to the end of columnID. Dropping on
// an unknown column cancels the session without mutating anything.
func (s *DragServiceImpl) DropOnColumn(ctx context.Context, columnID string) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	dctx := drag.DropContext{}
	if _, ok := snap.Columns[columnID]; ok {
		dctx.TargetColumn = columnID
	}
	return s.resolve(ctx, dctx)
}

// DropOnCard moves the dragged card to targetCardID's column at its index.
// Dropping on an unknown card cancels the session.
func (s *DragServiceImpl) DropOnCard(ctx context.Context, targetCardID string) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	dctx := drag.DropContext{}
	if target, ok := snap.Cards[targetCardID]; ok {
		dctx.TargetCard = target.ID
		dctx.TargetColumn = target.ColumnID
	}
	return s.resolve(ctx, dctx)
}

// CancelDrag ends the session without mutating anything.
func (s *DragServiceImpl) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Cancel()
}

// Dragging returns the active card id, or "" when idle.
func (s *DragServiceImpl) Dragging() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Active()
}

func (s *DragServiceImpl) resolve(ctx context.Context, dctx drag.DropContext) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()

	s.mu.Lock()
	if active := s.session.Active(); active != "" {
		if card, ok := snap.Cards[active]; ok {
			dctx.CardColumnID = card.ColumnID
		} else {
			// Dragged card vanished mid-session (cascading delete): cancel.
			dctx = drag.DropContext{}
		}
	}
	res := s.session.Drop(dctx)
	s.mu.Unlock()

	switch res.Outcome {
	case drag.OutcomeAppend:
		return s.cards.MoveCard(ctx, primary.MoveCardRequest{
			ID:       res.CardID,
			ColumnID: res.ColumnID,
			ToIndex:  -1,
		})
	case drag.OutcomeReorder, drag.OutcomeTransfer:
		toIndex := displayIndex(snap.CardsOf(res.ColumnID), res.TargetCardID)
		return s.cards.MoveCard(ctx, primary.MoveCardRequest{
			ID:       res.CardID,
			ColumnID: res.ColumnID,
			ToIndex:  toIndex,
		})
	default:
		return nil, nil
	}
}

// displayIndex finds a card's index within an ordered sibling slice.
func displayIndex(cards []*models.Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
