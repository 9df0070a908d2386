package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/deck/internal/core/position"
	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
)

// CardServiceImpl implements primary.CardService.
type CardServiceImpl struct {
	engine *Engine
}

var _ primary.CardService = (*CardServiceImpl)(nil)

// NewCardService creates a CardService backed by the given engine.
func NewCardService(engine *Engine) *CardServiceImpl {
	return &CardServiceImpl{engine: engine}
}

// CreateCard appends a card to its column.
func (s *CardServiceImpl) CreateCard(ctx context.Context, req primary.CreateCardRequest) (*models.Card, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: card title must not be empty", ErrInvalid)
	}

	snap := s.engine.Store().Snapshot()
	if _, ok := snap.Columns[req.ColumnID]; !ok {
		return nil, fmt.Errorf("%w: column %s", ErrNotFound, req.ColumnID)
	}

	now := time.Now().UTC()
	card := &models.Card{
		ID:          uuid.NewString(),
		ColumnID:    req.ColumnID,
		Title:       title,
		Description: req.Description,
		Position:    position.Next(cardEntries(snap.CardsOf(req.ColumnID))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.engine.Submit("create card",
		[]Change{{Kind: models.KindCard, ID: card.ID, After: card}},
		[]Call{{
			Kind: models.KindCard,
			ID:   card.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.CreateCard(ctx, cardToRecord(card))
				if err != nil {
					return nil, err
				}
				return recordToCard(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard applies a partial edit to title and/or description.
func (s *CardServiceImpl) UpdateCard(ctx context.Context, req primary.UpdateCardRequest) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	current, ok := snap.Cards[req.ID]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, req.ID)
	}
	if req.Title == nil && req.Description == nil {
		return current, nil
	}

	fields := secondary.CardFields{}
	after := current.Clone()
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: card title must not be empty", ErrInvalid)
		}
		after.Title = title
		fields.Title = ptr(title)
	}
	if req.Description != nil {
		after.Description = *req.Description
		fields.Description = req.Description
	}
	after.UpdatedAt = time.Now().UTC()

	err := s.engine.Submit("update card",
		[]Change{{Kind: models.KindCard, ID: after.ID, Before: current, After: after}},
		[]Call{{
			Kind: models.KindCard,
			ID:   after.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.UpdateCard(ctx, after.ID, fields)
				if err != nil {
					return nil, err
				}
				return recordToCard(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return after, nil
}

// MoveCard moves a card within or across columns. Every sibling whose
// position shifts is part of the same mutation: all of it applies in one
// snapshot swap and all of it reverts if any remote call fails.
func (s *CardServiceImpl) MoveCard(ctx context.Context, req primary.MoveCardRequest) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	current, ok := snap.Cards[req.ID]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, req.ID)
	}
	if _, ok := snap.Columns[req.ColumnID]; !ok {
		return nil, fmt.Errorf("%w: column %s", ErrNotFound, req.ColumnID)
	}

	var plan []position.Change
	if req.ColumnID == current.ColumnID {
		siblings := cardEntries(snap.CardsOf(current.ColumnID))
		toIndex := req.ToIndex
		if toIndex < 0 || toIndex >= len(siblings) {
			toIndex = len(siblings) - 1
		}
		reordered, err := position.Reorder(siblings, req.ID, toIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		plan = reordered
	} else {
		plan = position.Remove(cardEntries(snap.CardsOf(current.ColumnID)), req.ID)
		inserted, err := position.Insert(cardEntries(snap.CardsOf(req.ColumnID)), req.ID, req.ToIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		plan = append(plan, inserted...)
	}
	if len(plan) == 0 {
		return current, nil
	}

	now := time.Now().UTC()
	var (
		changes []Change
		calls   []Call
		moved   = current
	)
	for _, pc := range plan {
		before := snap.Cards[pc.ID]
		after := before.Clone()
		after.Position = pc.Position
		after.UpdatedAt = now

		fields := secondary.CardFields{Position: ptr(pc.Position)}
		if pc.ID == req.ID {
			after.ColumnID = req.ColumnID
			fields.ColumnID = ptr(req.ColumnID)
			moved = after
		}

		changes = append(changes, Change{Kind: models.KindCard, ID: pc.ID, Before: before, After: after})
		calls = append(calls, updateCardFieldsCall(pc.ID, fields))
	}

	if err := s.engine.Submit("move card", changes, calls); err != nil {
		return nil, err
	}
	return moved, nil
}

// DeleteCard deletes a single card.
func (s *CardServiceImpl) DeleteCard(ctx context.Context, id string) error {
	snap := s.engine.Store().Snapshot()
	card, ok := snap.Cards[id]
	if !ok {
		return fmt.Errorf("%w: card %s", ErrNotFound, id)
	}

	return s.engine.Submit("delete card",
		[]Change{{Kind: models.KindCard, ID: id, Before: card}},
		[]Call{{
			Kind: models.KindCard,
			ID:   id,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.DeleteCard(ctx, id)
			},
		}},
	)
}

// AddTagToCard attaches a tag to a card. Already attached is a no-op.
func (s *CardServiceImpl) AddTagToCard(ctx context.Context, cardID, tagID string) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	current, ok := snap.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}
	if _, ok := snap.Tags[tagID]; !ok {
		return nil, fmt.Errorf("%w: tag %s", ErrNotFound, tagID)
	}
	if current.HasTag(tagID) {
		return current, nil
	}

	after := current.Clone()
	after.TagIDs = append(after.TagIDs, tagID)
	after.UpdatedAt = time.Now().UTC()

	err := s.engine.Submit("tag card",
		[]Change{{Kind: models.KindCard, ID: cardID, Before: current, After: after}},
		[]Call{{
			Kind: models.KindCard,
			ID:   cardID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.AttachTag(ctx, cardID, tagID)
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return after, nil
}

// RemoveTagFromCard detaches a tag from a card. Not attached is a no-op.
func (s *CardServiceImpl) RemoveTagFromCard(ctx context.Context, cardID, tagID string) (*models.Card, error) {
	snap := s.engine.Store().Snapshot()
	current, ok := snap.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}
	if !current.HasTag(tagID) {
		return current, nil
	}

	after := current.Clone()
	after.TagIDs = slices.DeleteFunc(after.TagIDs, func(id string) bool { return id == tagID })
	after.UpdatedAt = time.Now().UTC()

	err := s.engine.Submit("untag card",
		[]Change{{Kind: models.KindCard, ID: cardID, Before: current, After: after}},
		[]Call{{
			Kind: models.KindCard,
			ID:   cardID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.DetachTag(ctx, cardID, tagID)
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return after, nil
}

func updateCardFieldsCall(id string, fields secondary.CardFields) Call {
	return Call{
		Kind: models.KindCard,
		ID:   id,
		Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
			rec, err := gw.UpdateCard(ctx, id, fields)
			if err != nil {
				return nil, err
			}
			return recordToCard(rec), nil
		},
	}
}

func cardEntries(cards []*models.Card) []position.Entry {
	entries := make([]position.Entry, len(cards))
	for i, c := range cards {
		entries[i] = position.Entry{ID: c.ID, Position: c.Position}
	}
	return entries
}
