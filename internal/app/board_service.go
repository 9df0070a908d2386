package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
	"github.com/example/deck/internal/store"
)

// BoardServiceImpl implements primary.BoardService.
type BoardServiceImpl struct {
	engine *Engine
}

var _ primary.BoardService = (*BoardServiceImpl)(nil)

// NewBoardService creates a BoardService backed by the given engine.
func NewBoardService(engine *Engine) *BoardServiceImpl {
	return &BoardServiceImpl{engine: engine}
}

// CreateBoard creates an empty board, optimistically.
func (s *BoardServiceImpl) CreateBoard(ctx context.Context, req primary.CreateBoardRequest) (*models.Board, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: board title must not be empty", ErrInvalid)
	}

	now := time.Now().UTC()
	board := &models.Board{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.engine.Submit("create board",
		[]Change{{Kind: models.KindBoard, ID: board.ID, After: board}},
		[]Call{{
			Kind: models.KindBoard,
			ID:   board.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.CreateBoard(ctx, boardToRecord(board))
				if err != nil {
					return nil, err
				}
				return recordToBoard(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return board, nil
}

// UpdateBoard renames a board, optimistically.
func (s *BoardServiceImpl) UpdateBoard(ctx context.Context, req primary.UpdateBoardRequest) (*models.Board, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: board title must not be empty", ErrInvalid)
	}

	snap := s.engine.Store().Snapshot()
	current, ok := snap.Boards[req.ID]
	if !ok {
		return nil, fmt.Errorf("%w: board %s", ErrNotFound, req.ID)
	}

	after := current.Clone()
	after.Title = title
	after.UpdatedAt = time.Now().UTC()

	err := s.engine.Submit("rename board",
		[]Change{{Kind: models.KindBoard, ID: after.ID, Before: current, After: after}},
		[]Call{{
			Kind: models.KindBoard,
			ID:   after.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.UpdateBoard(ctx, after.ID, secondary.BoardFields{Title: ptr(title)})
				if err != nil {
					return nil, err
				}
				return recordToBoard(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return after, nil
}

// DeleteBoard deletes a board with a local cascade over its columns and
// cards. The remote store cascades on its side; one delete call settles
// the whole mutation, and a remote failure restores the full subtree.
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, id string) error {
	snap := s.engine.Store().Snapshot()
	board, ok := snap.Boards[id]
	if !ok {
		return fmt.Errorf("%w: board %s", ErrNotFound, id)
	}

	changes := []Change{{Kind: models.KindBoard, ID: id, Before: board}}
	for _, col := range snap.ColumnsOf(id) {
		changes = append(changes, Change{Kind: models.KindColumn, ID: col.ID, Before: col})
		for _, c := range snap.CardsOf(col.ID) {
			changes = append(changes, Change{Kind: models.KindCard, ID: c.ID, Before: c})
		}
	}

	return s.engine.Submit("delete board", changes,
		[]Call{{
			Kind: models.KindBoard,
			ID:   id,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.DeleteBoard(ctx, id)
			},
		}},
	)
}

// SelectBoard bulk-fetches the board's columns and cards and installs them
// as the current scope. Blocking; toggles IsLoading around the fetch.
func (s *BoardServiceImpl) SelectBoard(ctx context.Context, id string) (*models.Board, error) {
	snap := s.engine.Store().Snapshot()
	board, ok := snap.Boards[id]
	if !ok {
		return nil, fmt.Errorf("%w: board %s", ErrNotFound, id)
	}

	s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(true) })

	gw := s.engine.Gateway()
	colRecs, err := gw.ListColumns(ctx, id)
	if err == nil {
		var cardRecs []*secondary.CardRecord
		cardRecs, err = gw.ListCards(ctx, id)
		if err == nil {
			columns := make([]*models.Column, len(colRecs))
			for i, r := range colRecs {
				columns[i] = recordToColumn(r)
			}
			cards := make([]*models.Card, len(cardRecs))
			for i, r := range cardRecs {
				cards[i] = recordToCard(r)
			}
			s.engine.Update(func(sn store.Snapshot) store.Snapshot {
				return sn.ReplaceBoardScope(id, columns, cards).WithLoading(false)
			})
			return board, nil
		}
	}

	s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(false) })
	return nil, fmt.Errorf("failed to load board %s: %w", id, err)
}

// DeselectBoard clears the current board scope.
func (s *BoardServiceImpl) DeselectBoard(ctx context.Context) {
	s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.ClearBoardScope() })
}

// ListBoards bulk-fetches all boards into the snapshot.
func (s *BoardServiceImpl) ListBoards(ctx context.Context) ([]*models.Board, error) {
	s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(true) })

	recs, err := s.engine.Gateway().ListBoards(ctx)
	if err != nil {
		s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(false) })
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	boards := make([]*models.Board, len(recs))
	for i, r := range recs {
		boards[i] = recordToBoard(r)
	}
	s.engine.Update(func(sn store.Snapshot) store.Snapshot {
		return sn.ReplaceBoards(boards).WithLoading(false)
	})
	return s.engine.Store().Snapshot().BoardList(), nil
}
