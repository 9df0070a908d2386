package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/deck/internal/core/position"
	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
)

// ColumnServiceImpl implements primary.ColumnService.
type ColumnServiceImpl struct {
	engine *Engine
}

var _ primary.ColumnService = (*ColumnServiceImpl)(nil)

// NewColumnService creates a ColumnService backed by the given engine.
func NewColumnService(engine *Engine) *ColumnServiceImpl {
	return &ColumnServiceImpl{engine: engine}
}

// CreateColumn appends a column to its board.
func (s *ColumnServiceImpl) CreateColumn(ctx context.Context, req primary.CreateColumnRequest) (*models.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: column title must not be empty", ErrInvalid)
	}

	snap := s.engine.Store().Snapshot()
	if _, ok := snap.Boards[req.BoardID]; !ok {
		return nil, fmt.Errorf("%w: board %s", ErrNotFound, req.BoardID)
	}

	now := time.Now().UTC()
	column := &models.Column{
		ID:        uuid.NewString(),
		BoardID:   req.BoardID,
		Title:     title,
		Position:  position.Next(columnEntries(snap.ColumnsOf(req.BoardID))),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.engine.Submit("create column",
		[]Change{{Kind: models.KindColumn, ID: column.ID, After: column}},
		[]Call{{
			Kind: models.KindColumn,
			ID:   column.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.CreateColumn(ctx, columnToRecord(column))
				if err != nil {
					return nil, err
				}
				return recordToColumn(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn renames a column.
func (s *ColumnServiceImpl) UpdateColumn(ctx context.Context, req primary.UpdateColumnRequest) (*models.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: column title must not be empty", ErrInvalid)
	}

	snap := s.engine.Store().Snapshot()
	current, ok := snap.Columns[req.ID]
	if !ok {
		return nil, fmt.Errorf("%w: column %s", ErrNotFound, req.ID)
	}

	after := current.Clone()
	after.Title = title
	after.UpdatedAt = time.Now().UTC()

	err := s.engine.Submit("rename column",
		[]Change{{Kind: models.KindColumn, ID: after.ID, Before: current, After: after}},
		[]Call{{
			Kind: models.KindColumn,
			ID:   after.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.UpdateColumn(ctx, after.ID, secondary.ColumnFields{Title: ptr(title)})
				if err != nil {
					return nil, err
				}
				return recordToColumn(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return after, nil
}

// MoveColumn reorders a column within its board. The whole sibling scope is
// renumbered to 0..N-1 and every shifted sibling is persisted.
func (s *ColumnServiceImpl) MoveColumn(ctx context.Context, req primary.MoveColumnRequest) (*models.Column, error) {
	snap := s.engine.Store().Snapshot()
	current, ok := snap.Columns[req.ID]
	if !ok {
		return nil, fmt.Errorf("%w: column %s", ErrNotFound, req.ID)
	}

	siblings := snap.ColumnsOf(current.BoardID)
	toIndex := req.ToIndex
	if toIndex < 0 || toIndex >= len(siblings) {
		toIndex = len(siblings) - 1
	}
	plan, err := position.Reorder(columnEntries(siblings), req.ID, toIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
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
		before := snap.Columns[pc.ID]
		after := before.Clone()
		after.Position = pc.Position
		after.UpdatedAt = now
		if pc.ID == req.ID {
			moved = after
		}
		changes = append(changes, Change{Kind: models.KindColumn, ID: pc.ID, Before: before, After: after})
		calls = append(calls, updateColumnPositionCall(pc.ID, pc.Position))
	}

	if err := s.engine.Submit("move column", changes, calls); err != nil {
		return nil, err
	}
	return moved, nil
}

// DeleteColumn deletes a column with a local cascade over its cards.
func (s *ColumnServiceImpl) DeleteColumn(ctx context.Context, id string) error {
	snap := s.engine.Store().Snapshot()
	column, ok := snap.Columns[id]
	if !ok {
		return fmt.Errorf("%w: column %s", ErrNotFound, id)
	}

	changes := []Change{{Kind: models.KindColumn, ID: id, Before: column}}
	for _, c := range snap.CardsOf(id) {
		changes = append(changes, Change{Kind: models.KindCard, ID: c.ID, Before: c})
	}

	return s.engine.Submit("delete column", changes,
		[]Call{{
			Kind: models.KindColumn,
			ID:   id,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.DeleteColumn(ctx, id)
			},
		}},
	)
}

func updateColumnPositionCall(id string, pos int) Call {
	return Call{
		Kind: models.KindColumn,
		ID:   id,
		Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
			rec, err := gw.UpdateColumn(ctx, id, secondary.ColumnFields{Position: ptr(pos)})
			if err != nil {
				return nil, err
			}
			return recordToColumn(rec), nil
		},
	}
}

func columnEntries(columns []*models.Column) []position.Entry {
	entries := make([]position.Entry, len(columns))
	for i, c := range columns {
		entries[i] = position.Entry{ID: c.ID, Position: c.Position}
	}
	return entries
}
