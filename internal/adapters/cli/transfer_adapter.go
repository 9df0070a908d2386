package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/store"
)

// boardDocument is the export file format: one board with its full column,
// card and tag contents. Entities are re-created on import, so ids inside
// the document are only used to resolve tag references.
type boardDocument struct {
	Version int            `json:"version"`
	Title   string         `json:"title"`
	Tags    []tagExport    `json:"tags,omitempty"`
	Columns []columnExport `json:"columns"`
}

type columnExport struct {
	Title string       `json:"title"`
	Cards []cardExport `json:"cards"`
}

type cardExport struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"` // tag names
}

type tagExport struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TransferAdapter exports boards to JSON files and imports them back.
type TransferAdapter struct {
	boards  primary.BoardService
	columns primary.ColumnService
	cards   primary.CardService
	tags    primary.TagService
	store   *store.Store
	out     io.Writer
}

// NewTransferAdapter creates a TransferAdapter writing progress to out.
func NewTransferAdapter(
	boards primary.BoardService,
	columns primary.ColumnService,
	cards primary.CardService,
	tags primary.TagService,
	st *store.Store,
	out io.Writer,
) *TransferAdapter {
	return &TransferAdapter{
		boards: boards, columns: columns, cards: cards, tags: tags,
		store: st, out: out,
	}
}

// Export writes a board's full contents to path. The write is atomic, so a
// crash mid-export never leaves a truncated file behind.
func (a *TransferAdapter) Export(ctx context.Context, boardID, path string) error {
	board, err := a.boards.SelectBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	if _, err := a.tags.ListTags(ctx); err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	snap := a.store.Snapshot()
	doc := boardDocument{Version: 1, Title: board.Title}

	usedTags := map[string]bool{}
	for _, col := range snap.ColumnsOf(board.ID) {
		ce := columnExport{Title: col.Title}
		for _, card := range snap.CardsOf(col.ID) {
			ex := cardExport{Title: card.Title, Description: card.Description}
			for _, tid := range card.TagIDs {
				if tag := snap.Tags[tid]; tag != nil {
					ex.Tags = append(ex.Tags, tag.Name)
					usedTags[tid] = true
				}
			}
			ce.Cards = append(ce.Cards, ex)
		}
		doc.Columns = append(doc.Columns, ce)
	}
	for _, tag := range snap.TagList() {
		if usedTags[tag.ID] {
			doc.Tags = append(doc.Tags, tagExport{Name: tag.Name, Color: tag.Color})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "✓ Exported board %s to %s\n", board.Title, path)
	return nil
}

// Import re-creates a board from an export file. Entities get fresh ids;
// tags are matched to existing ones by name and created when missing.
func (a *TransferAdapter) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc boardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Title == "" {
		return fmt.Errorf("%s: document has no board title", path)
	}

	existing, err := a.tags.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	tagByName := map[string]string{}
	for _, tag := range existing {
		tagByName[tag.Name] = tag.ID
	}
	for _, te := range doc.Tags {
		if _, ok := tagByName[te.Name]; ok {
			continue
		}
		tag, err := a.tags.CreateTag(ctx, primary.CreateTagRequest{Name: te.Name, Color: te.Color})
		if err != nil {
			return fmt.Errorf("failed to create tag %s: %w", te.Name, err)
		}
		tagByName[tag.Name] = tag.ID
	}

	board, err := a.boards.CreateBoard(ctx, primary.CreateBoardRequest{Title: doc.Title})
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	if _, err := a.boards.SelectBoard(ctx, board.ID); err != nil {
		return fmt.Errorf("failed to select board: %w", err)
	}

	cardCount := 0
	for _, ce := range doc.Columns {
		col, err := a.columns.CreateColumn(ctx, primary.CreateColumnRequest{
			BoardID: board.ID,
			Title:   ce.Title,
		})
		if err != nil {
			return fmt.Errorf("failed to create column %s: %w", ce.Title, err)
		}
		for _, ex := range ce.Cards {
			card, err := a.cards.CreateCard(ctx, primary.CreateCardRequest{
				ColumnID:    col.ID,
				Title:       ex.Title,
				Description: ex.Description,
			})
			if err != nil {
				return fmt.Errorf("failed to create card %s: %w", ex.Title, err)
			}
			for _, name := range ex.Tags {
				id, ok := tagByName[name]
				if !ok {
					continue
				}
				if _, err := a.cards.AddTagToCard(ctx, card.ID, id); err != nil {
					return fmt.Errorf("failed to tag card %s: %w", ex.Title, err)
				}
			}
			cardCount++
		}
	}

	fmt.Fprintf(a.out, "✓ Imported board %s (%d columns, %d cards)\n",
		board.Title, len(doc.Columns), cardCount)
	return nil
}
