package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/deck/internal/adapters/sqlite"
	"github.com/example/deck/internal/app"
	"github.com/example/deck/internal/db"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/store"
)

// Adapters are tested against a real engine over an in-memory database, so
// the output reflects what a user of local mode would actually see.
type stack struct {
	store   *store.Store
	engine  *app.Engine
	boards  primary.BoardService
	columns primary.ColumnService
	cards   primary.CardService
	tags    primary.TagService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	color.NoColor = true

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	st := store.New()
	engine := app.NewEngine(st, sqlite.NewGateway(database), nil, nil)
	t.Cleanup(engine.Close)

	return &stack{
		store:   st,
		engine:  engine,
		boards:  app.NewBoardService(engine),
		columns: app.NewColumnService(engine),
		cards:   app.NewCardService(engine),
		tags:    app.NewTagService(engine),
	}
}

func TestBoardAdapterCreateAndList(t *testing.T) {
	s := newStack(t)
	var out bytes.Buffer
	a := NewBoardAdapter(s.boards, s.store, &out)
	ctx := context.Background()

	require.NoError(t, a.Create(ctx, "Sprint 1"))
	assert.Contains(t, out.String(), "Created board")
	s.engine.Flush()

	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "Sprint 1")
}

func TestBoardAdapterShowRendersColumnsAndCards(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	board, err := s.boards.CreateBoard(ctx, primary.CreateBoardRequest{Title: "Sprint 1"})
	require.NoError(t, err)
	col, err := s.columns.CreateColumn(ctx, primary.CreateColumnRequest{BoardID: board.ID, Title: "To Do"})
	require.NoError(t, err)
	_, err = s.cards.CreateCard(ctx, primary.CreateCardRequest{ColumnID: col.ID, Title: "Write docs"})
	require.NoError(t, err)
	s.engine.Flush()

	var out bytes.Buffer
	a := NewBoardAdapter(s.boards, s.store, &out)
	require.NoError(t, a.Show(ctx, board.ID))

	text := out.String()
	assert.Contains(t, text, "Sprint 1")
	assert.Contains(t, text, "To Do (1)")
	assert.Contains(t, text, "Write docs")
}

func TestBoardAdapterShowUnknownBoard(t *testing.T) {
	s := newStack(t)
	var out bytes.Buffer
	a := NewBoardAdapter(s.boards, s.store, &out)
	assert.Error(t, a.Show(context.Background(), "ghost"))
}

func TestNotifierOutput(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	n := NewNotifier(&out)
	n.OperationFailed("move card", assert.AnError)
	assert.Contains(t, out.String(), "move card")
	assert.Contains(t, out.String(), "reverted")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newStack(t)
	ctx := context.Background()

	board, err := src.boards.CreateBoard(ctx, primary.CreateBoardRequest{Title: "Sprint 1"})
	require.NoError(t, err)
	todo, err := src.columns.CreateColumn(ctx, primary.CreateColumnRequest{BoardID: board.ID, Title: "To Do"})
	require.NoError(t, err)
	done, err := src.columns.CreateColumn(ctx, primary.CreateColumnRequest{BoardID: board.ID, Title: "Done"})
	require.NoError(t, err)
	cardA, err := src.cards.CreateCard(ctx, primary.CreateCardRequest{ColumnID: todo.ID, Title: "A", Description: "first"})
	require.NoError(t, err)
	_, err = src.cards.CreateCard(ctx, primary.CreateCardRequest{ColumnID: done.ID, Title: "B"})
	require.NoError(t, err)
	tag, err := src.tags.CreateTag(ctx, primary.CreateTagRequest{Name: "urgent", Color: "#ff0000"})
	require.NoError(t, err)
	_, err = src.cards.AddTagToCard(ctx, cardA.ID, tag.ID)
	require.NoError(t, err)
	src.engine.Flush()

	path := filepath.Join(t.TempDir(), "sprint1.json")
	var out bytes.Buffer
	exporter := NewTransferAdapter(src.boards, src.columns, src.cards, src.tags, src.store, &out)
	require.NoError(t, exporter.Export(ctx, board.ID, path))

	// Import into a completely separate stack.
	dst := newStack(t)
	importer := NewTransferAdapter(dst.boards, dst.columns, dst.cards, dst.tags, dst.store, &out)
	require.NoError(t, importer.Import(ctx, path))
	dst.engine.Flush()

	snap := dst.store.Snapshot()
	boards := snap.BoardList()
	require.Len(t, boards, 1)
	assert.Equal(t, "Sprint 1", boards[0].Title)

	cols := snap.ColumnsOf(boards[0].ID)
	require.Len(t, cols, 2)
	assert.Equal(t, "To Do", cols[0].Title)
	assert.Equal(t, "Done", cols[1].Title)

	todoCards := snap.CardsOf(cols[0].ID)
	require.Len(t, todoCards, 1)
	assert.Equal(t, "A", todoCards[0].Title)
	assert.Equal(t, "first", todoCards[0].Description)
	require.Len(t, todoCards[0].TagIDs, 1)
	assert.Equal(t, "urgent", snap.Tags[todoCards[0].TagIDs[0]].Name)

	assert.Contains(t, out.String(), "Imported board")
}

func TestImportRejectsMalformedFile(t *testing.T) {
	s := newStack(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	var out bytes.Buffer
	importer := NewTransferAdapter(s.boards, s.columns, s.cards, s.tags, s.store, &out)
	err := importer.Import(context.Background(), path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse"))
}
