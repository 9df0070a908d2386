package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
	"github.com/example/deck/internal/store"
)

// Ensure the mock satisfies the port.
var _ secondary.Gateway = (*mockGateway)(nil)

// mockGateway implements secondary.Gateway in memory. Failures and holds
// are scripted per method name so tests can exercise revert and staleness
// paths deterministically.
type mockGateway struct {
	mu       sync.Mutex
	boards   map[string]*secondary.BoardRecord
	columns  map[string]*secondary.ColumnRecord
	cards    map[string]*secondary.CardRecord
	tags     map[string]*secondary.TagRecord
	cardTags map[string]map[string]bool

	fail  map[string]error
	hold  map[string]chan struct{}
	calls []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		boards:   map[string]*secondary.BoardRecord{},
		columns:  map[string]*secondary.ColumnRecord{},
		cards:    map[string]*secondary.CardRecord{},
		tags:     map[string]*secondary.TagRecord{},
		cardTags: map[string]map[string]bool{},
		fail:     map[string]error{},
		hold:     map[string]chan struct{}{},
	}
}

// failOn makes every future call of method return err.
func (g *mockGateway) failOn(method string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[method] = err
}

// holdOn blocks calls of method until the returned release fn runs.
func (g *mockGateway) holdOn(method string) (release func()) {
	ch := make(chan struct{})
	g.mu.Lock()
	g.hold[method] = ch
	g.mu.Unlock()
	return func() { close(ch) }
}

func (g *mockGateway) callLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// enter records the call, honors holds, and returns any scripted failure.
func (g *mockGateway) enter(method string) error {
	g.mu.Lock()
	g.calls = append(g.calls, method)
	gate := g.hold[method]
	err := g.fail[method]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (g *mockGateway) CreateBoard(ctx context.Context, b *secondary.BoardRecord) (*secondary.BoardRecord, error) {
	if err := g.enter("CreateBoard"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := *b
	g.boards[b.ID] = &cp
	out := cp
	return &out, nil
}

func (g *mockGateway) UpdateBoard(ctx context.Context, id string, f secondary.BoardFields) (*secondary.BoardRecord, error) {
	if err := g.enter("UpdateBoard"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s not found", id)
	}
	if f.Title != nil {
		b.Title = *f.Title
	}
	b.UpdatedAt = time.Now().UTC()
	out := *b
	return &out, nil
}

func (g *mockGateway) DeleteBoard(ctx context.Context, id string) error {
	if err := g.enter("DeleteBoard"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.boards, id)
	for cid, c := range g.columns {
		if c.BoardID == id {
			delete(g.columns, cid)
		}
	}
	return nil
}

func (g *mockGateway) ListBoards(ctx context.Context) ([]*secondary.BoardRecord, error) {
	if err := g.enter("ListBoards"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*secondary.BoardRecord
	for _, b := range g.boards {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *mockGateway) CreateColumn(ctx context.Context, c *secondary.ColumnRecord) (*secondary.ColumnRecord, error) {
	if err := g.enter("CreateColumn"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := *c
	g.columns[c.ID] = &cp
	out := cp
	return &out, nil
}

func (g *mockGateway) UpdateColumn(ctx context.Context, id string, f secondary.ColumnFields) (*secondary.ColumnRecord, error) {
	if err := g.enter("UpdateColumn"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.columns[id]
	if !ok {
		return nil, fmt.Errorf("column %s not found", id)
	}
	if f.Title != nil {
		c.Title = *f.Title
	}
	if f.Position != nil {
		c.Position = *f.Position
	}
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

func (g *mockGateway) DeleteColumn(ctx context.Context, id string) error {
	if err := g.enter("DeleteColumn"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.columns, id)
	for cid, c := range g.cards {
		if c.ColumnID == id {
			delete(g.cards, cid)
		}
	}
	return nil
}

func (g *mockGateway) ListColumns(ctx context.Context, boardID string) ([]*secondary.ColumnRecord, error) {
	if err := g.enter("ListColumns"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*secondary.ColumnRecord
	for _, c := range g.columns {
		if c.BoardID == boardID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (g *mockGateway) CreateCard(ctx context.Context, c *secondary.CardRecord) (*secondary.CardRecord, error) {
	if err := g.enter("CreateCard"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := *c
	g.cards[c.ID] = &cp
	out := cp
	return &out, nil
}

func (g *mockGateway) UpdateCard(ctx context.Context, id string, f secondary.CardFields) (*secondary.CardRecord, error) {
	if err := g.enter("UpdateCard"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %s not found", id)
	}
	if f.Title != nil {
		c.Title = *f.Title
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if f.ColumnID != nil {
		c.ColumnID = *f.ColumnID
	}
	if f.Position != nil {
		c.Position = *f.Position
	}
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

func (g *mockGateway) DeleteCard(ctx context.Context, id string) error {
	if err := g.enter("DeleteCard"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.cards, id)
	delete(g.cardTags, id)
	return nil
}

func (g *mockGateway) ListCards(ctx context.Context, boardID string) ([]*secondary.CardRecord, error) {
	if err := g.enter("ListCards"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*secondary.CardRecord
	for _, c := range g.cards {
		col, ok := g.columns[c.ColumnID]
		if !ok || col.BoardID != boardID {
			continue
		}
		cp := *c
		for tagID := range g.cardTags[c.ID] {
			cp.TagIDs = append(cp.TagIDs, tagID)
		}
		sort.Strings(cp.TagIDs)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (g *mockGateway) CreateTag(ctx context.Context, t *secondary.TagRecord) (*secondary.TagRecord, error) {
	if err := g.enter("CreateTag"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := *t
	g.tags[t.ID] = &cp
	out := cp
	return &out, nil
}

func (g *mockGateway) DeleteTag(ctx context.Context, id string) error {
	if err := g.enter("DeleteTag"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tags, id)
	for _, tags := range g.cardTags {
		delete(tags, id)
	}
	return nil
}

func (g *mockGateway) ListTags(ctx context.Context) ([]*secondary.TagRecord, error) {
	if err := g.enter("ListTags"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*secondary.TagRecord
	for _, t := range g.tags {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g *mockGateway) AttachTag(ctx context.Context, cardID, tagID string) error {
	if err := g.enter("AttachTag"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cardTags[cardID] == nil {
		g.cardTags[cardID] = map[string]bool{}
	}
	g.cardTags[cardID][tagID] = true
	return nil
}

func (g *mockGateway) DetachTag(ctx context.Context, cardID, tagID string) error {
	if err := g.enter("DetachTag"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.cardTags[cardID], tagID)
	return nil
}

// mockNotifier records surfaced failures.
type mockNotifier struct {
	mu     sync.Mutex
	failed []string
}

func (n *mockNotifier) OperationFailed(op string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, op)
}

func (n *mockNotifier) failures() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.failed...)
}

// fixture wires a full engine with mock collaborators.
type fixture struct {
	store    *store.Store
	gw       *mockGateway
	notifier *mockNotifier
	engine   *Engine

	boards  primary.BoardService
	columns primary.ColumnService
	cards   primary.CardService
	tags    primary.TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New()
	gw := newMockGateway()
	n := &mockNotifier{}
	engine := NewEngine(st, gw, n, nil)
	t.Cleanup(engine.Close)
	return &fixture{
		store:    st,
		gw:       gw,
		notifier: n,
		engine:   engine,
		boards:   NewBoardService(engine),
		columns:  NewColumnService(engine),
		cards:    NewCardService(engine),
		tags:     NewTagService(engine),
	}
}

// seedBoard creates a board and a set of columns, flushed to the gateway.
func (f *fixture) seedBoard(t *testing.T, title string, columnTitles ...string) (string, []string) {
	t.Helper()
	ctx := context.Background()
	b, err := f.boards.CreateBoard(ctx, primary.CreateBoardRequest{Title: title})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	colIDs := make([]string, len(columnTitles))
	for i, ct := range columnTitles {
		c, err := f.columns.CreateColumn(ctx, primary.CreateColumnRequest{BoardID: b.ID, Title: ct})
		if err != nil {
			t.Fatalf("CreateColumn(%s): %v", ct, err)
		}
		colIDs[i] = c.ID
	}
	f.engine.Flush()
	return b.ID, colIDs
}

// seedCards creates cards in a column, flushed to the gateway.
func (f *fixture) seedCards(t *testing.T, columnID string, titles ...string) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, len(titles))
	for i, title := range titles {
		c, err := f.cards.CreateCard(ctx, primary.CreateCardRequest{ColumnID: columnID, Title: title})
		if err != nil {
			t.Fatalf("CreateCard(%s): %v", title, err)
		}
		ids[i] = c.ID
	}
	f.engine.Flush()
	return ids
}
