// Package cli defines the deck command tree. Commands are thin: they parse
// arguments, load the state they need into the snapshot, and delegate to
// the services behind wire.
package cli

import (
	"context"
	"fmt"

	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/wire"
)

// loadBoards pulls the board list into the snapshot so board-level
// mutations can validate against it.
func loadBoards(ctx context.Context) error {
	if _, err := wire.BoardService().ListBoards(ctx); err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}
	return nil
}

// loadBoard pulls one board's columns and cards into the snapshot. Column
// and card mutations validate against the snapshot, so they need the
// board's scope loaded first.
func loadBoard(ctx context.Context, boardID string) error {
	if err := loadBoards(ctx); err != nil {
		return err
	}
	if _, err := wire.BoardService().SelectBoard(ctx, boardID); err != nil {
		return fmt.Errorf("failed to load board %s: %w", boardID, err)
	}
	return nil
}

// tagByName resolves a tag name to the tag, fetching the collection first.
func tagByName(ctx context.Context, name string) (*models.Tag, error) {
	tags, err := wire.TagService().ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	for _, tag := range tags {
		if tag.Name == name {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("tag not found: %s", name)
}
