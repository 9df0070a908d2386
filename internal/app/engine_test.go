package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/store"
)

func TestOptimisticApplyIsImmediate(t *testing.T) {
	f := newFixture(t)
	release := f.gw.holdOn("CreateBoard")
	defer release()

	b, err := f.boards.CreateBoard(context.Background(), primary.CreateBoardRequest{Title: "Sprint 1"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	// The gateway call is still blocked, yet the snapshot already holds
	// the board.
	snap := f.store.Snapshot()
	if snap.Boards[b.ID] == nil {
		t.Fatalf("board missing from snapshot before remote call settled")
	}
	if snap.IsLoading {
		t.Errorf("optimistic mutation must not toggle IsLoading")
	}
}

func TestRemoteFailureRevertsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.gw.failOn("CreateBoard", errors.New("store rejected"))

	b, err := f.boards.CreateBoard(context.Background(), primary.CreateBoardRequest{Title: "Sprint 1"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	f.engine.Flush()

	if f.store.Snapshot().Boards[b.ID] != nil {
		t.Errorf("failed create was not reverted")
	}
	got := f.notifier.failures()
	if len(got) != 1 || got[0] != "create board" {
		t.Errorf("failures = %v, want [create board]", got)
	}
}

func TestFailedDeleteRestoresCascadedChildren(t *testing.T) {
	f := newFixture(t)
	boardID, cols := f.seedBoard(t, "Sprint 1", "To Do")
	cardIDs := f.seedCards(t, cols[0], "A", "B")

	f.gw.failOn("DeleteBoard", errors.New("network down"))
	if err := f.boards.DeleteBoard(context.Background(), boardID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}

	f.engine.Flush()

	snap := f.store.Snapshot()
	if snap.Boards[boardID] == nil {
		t.Errorf("board not restored after failed delete")
	}
	if snap.Columns[cols[0]] == nil {
		t.Errorf("cascaded column not restored after failed delete")
	}
	for _, id := range cardIDs {
		if snap.Cards[id] == nil {
			t.Errorf("cascaded card %s not restored after failed delete", id)
		}
	}
}

func TestMultiCallMutationStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	_, cols := f.seedBoard(t, "Sprint 1", "To Do")
	ids := f.seedCards(t, cols[0], "A", "B", "C")

	before := f.store.Snapshot()
	f.gw.failOn("UpdateCard", errors.New("boom"))

	// C to the front renumbers all three cards -> three update calls.
	if _, err := f.cards.MoveCard(context.Background(), primary.MoveCardRequest{
		ID: ids[2], ColumnID: cols[0], ToIndex: 0,
	}); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	f.engine.Flush()

	snap := f.store.Snapshot()
	for i, id := range ids {
		want := before.Cards[id].Position
		if got := snap.Cards[id].Position; got != want {
			t.Errorf("card %d position = %d, want reverted %d", i, got, want)
		}
	}

	// Exactly one UpdateCard was attempted; the rest were abandoned.
	updates := 0
	for _, c := range f.gw.callLog() {
		if c == "UpdateCard" {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("UpdateCard attempts = %d, want 1", updates)
	}
}

func TestStaleReconciliationKeepsLaterEdit(t *testing.T) {
	f := newFixture(t)
	release := f.gw.holdOn("CreateBoard")

	ctx := context.Background()
	b, err := f.boards.CreateBoard(ctx, primary.CreateBoardRequest{Title: "Sprint 1"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	// Rename while the create call is still in flight. The create's
	// reconciliation must not clobber the newer title.
	if _, err := f.boards.UpdateBoard(ctx, primary.UpdateBoardRequest{ID: b.ID, Title: "Sprint One"}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	release()
	f.engine.Flush()

	if got := f.store.Snapshot().Boards[b.ID].Title; got != "Sprint One" {
		t.Errorf("title = %q after slow create settled, want Sprint One", got)
	}
}

func TestSameEntityCallsKeepSubmissionOrder(t *testing.T) {
	f := newFixture(t)
	release := f.gw.holdOn("CreateCard")

	_, cols := f.seedBoard(t, "Sprint 1", "To Do")
	ctx := context.Background()
	c, err := f.cards.CreateCard(ctx, primary.CreateCardRequest{ColumnID: cols[0], Title: "A"})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if _, err := f.cards.UpdateCard(ctx, primary.UpdateCardRequest{ID: c.ID, Title: ptr("A2")}); err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}

	release()
	f.engine.Flush()

	log := f.gw.callLog()
	creates, updates := -1, -1
	for i, call := range log {
		switch call {
		case "CreateCard":
			creates = i
		case "UpdateCard":
			updates = i
		}
	}
	if creates == -1 || updates == -1 || creates > updates {
		t.Errorf("call order = %v, want CreateCard before UpdateCard", log)
	}
	if got := f.gw.cards[c.ID].Title; got != "A2" {
		t.Errorf("remote title = %q, want A2", got)
	}
}

func TestSubmitAfterCloseIsRejected(t *testing.T) {
	f := newFixture(t)
	f.engine.Close()

	_, err := f.boards.CreateBoard(context.Background(), primary.CreateBoardRequest{Title: "late"})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("CreateBoard after close: err = %v, want ErrClosed", err)
	}
}

func TestCloseDropsInFlightCompletion(t *testing.T) {
	f := newFixture(t)
	release := f.gw.holdOn("CreateBoard")

	b, err := f.boards.CreateBoard(context.Background(), primary.CreateBoardRequest{Title: "Sprint 1"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	f.engine.Close()
	release()

	// The reconciliation must be a no-op on the torn-down engine; the
	// store keeps whatever it held at close time.
	if f.store.Snapshot().Boards[b.ID] == nil {
		t.Errorf("close must not wipe the store")
	}
}

func TestObserverSeesOneTransitionPerCascade(t *testing.T) {
	f := newFixture(t)
	boardID, cols := f.seedBoard(t, "Sprint 1", "To Do", "Done")
	f.seedCards(t, cols[0], "A", "B")

	var transitions int
	unsub := f.store.Subscribe(func(store.Snapshot) { transitions++ })
	defer unsub()

	// Deleting the board removes five entities but is one logical op.
	if err := f.boards.DeleteBoard(context.Background(), boardID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if transitions != 1 {
		t.Errorf("observer saw %d transitions for one cascade, want 1", transitions)
	}
}
