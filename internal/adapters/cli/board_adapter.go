// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/store"
)

// BoardAdapter translates board CLI operations to BoardService calls and
// renders snapshots for the terminal.
type BoardAdapter struct {
	service primary.BoardService
	store   *store.Store
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter writing to out.
func NewBoardAdapter(service primary.BoardService, st *store.Store, out io.Writer) *BoardAdapter {
	return &BoardAdapter{service: service, store: st, out: out}
}

// Create creates a new board.
func (a *BoardAdapter) Create(ctx context.Context, title string) error {
	board, err := a.service.CreateBoard(ctx, primary.CreateBoardRequest{Title: title})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created board %s: %s\n", board.ID, board.Title)
	return nil
}

// List lists all boards.
func (a *BoardAdapter) List(ctx context.Context) error {
	boards, err := a.service.ListBoards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}

	if len(boards) == 0 {
		fmt.Fprintln(a.out, "No boards found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED")
	for _, b := range boards {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Title, b.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

// Show loads a board and renders its columns and cards.
func (a *BoardAdapter) Show(ctx context.Context, id string) error {
	board, err := a.service.SelectBoard(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	snap := a.store.Snapshot()
	title := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(a.out, "%s\n\n", title(board.Title))

	cols := snap.ColumnsOf(board.ID)
	if len(cols) == 0 {
		fmt.Fprintln(a.out, "No columns")
		return nil
	}

	colTitle := color.New(color.FgCyan).SprintFunc()
	tagName := color.New(color.FgYellow).SprintFunc()
	for _, col := range cols {
		cards := snap.CardsOf(col.ID)
		fmt.Fprintf(a.out, "%s (%d)\n", colTitle(col.Title), len(cards))
		for _, card := range cards {
			fmt.Fprintf(a.out, "  [%d] %s %s", card.Position, card.ID, card.Title)
			for _, tid := range card.TagIDs {
				if tag := snap.Tags[tid]; tag != nil {
					fmt.Fprintf(a.out, " %s", tagName("#"+tag.Name))
				}
			}
			fmt.Fprintln(a.out)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// Rename renames a board.
func (a *BoardAdapter) Rename(ctx context.Context, id, title string) error {
	board, err := a.service.UpdateBoard(ctx, primary.UpdateBoardRequest{ID: id, Title: title})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Renamed board %s to %s\n", board.ID, board.Title)
	return nil
}

// Delete deletes a board and everything under it.
func (a *BoardAdapter) Delete(ctx context.Context, id string) error {
	if err := a.service.DeleteBoard(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted board %s\n", id)
	return nil
}
