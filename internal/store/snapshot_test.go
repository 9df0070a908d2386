package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/deck/internal/models"
)

func board(id, title string) *models.Board {
	return &models.Board{ID: id, Title: title, CreatedAt: time.Unix(1, 0)}
}

func column(id, boardID string, pos int) *models.Column {
	return &models.Column{ID: id, BoardID: boardID, Title: id, Position: pos}
}

func card(id, columnID string, pos int, tags ...string) *models.Card {
	return &models.Card{ID: id, ColumnID: columnID, Title: id, Position: pos, TagIDs: tags}
}

func mustWith(t *testing.T, s Snapshot, e models.Entity) Snapshot {
	t.Helper()
	next, err := s.With(e)
	if err != nil {
		t.Fatalf("With(%v): %v", e, err)
	}
	return next
}

func TestWithRejectsEmptyID(t *testing.T) {
	s := NewSnapshot()
	if _, err := s.With(&models.Board{}); err != ErrEmptyID {
		t.Errorf("With(empty id) error = %v, want ErrEmptyID", err)
	}
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	s := NewSnapshot()
	s1 := mustWith(t, s, board("b1", "one"))
	s2 := mustWith(t, s1, board("b1", "renamed"))

	if len(s.Boards) != 0 {
		t.Errorf("original snapshot gained boards")
	}
	if s1.Boards["b1"].Title != "one" {
		t.Errorf("prior snapshot changed: title = %q", s1.Boards["b1"].Title)
	}
	if s2.Boards["b1"].Title != "renamed" {
		t.Errorf("new snapshot title = %q", s2.Boards["b1"].Title)
	}
}

func TestWithoutUnknownIDIsNoop(t *testing.T) {
	s := mustWith(t, NewSnapshot(), board("b1", "one"))
	got := s.Without(models.KindBoard, "missing")
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
}

func TestBoardDeleteCascades(t *testing.T) {
	s := NewSnapshot()
	s = mustWith(t, s, board("b1", "Sprint 1"))
	s = mustWith(t, s, board("b2", "Sprint 2"))
	s = mustWith(t, s, column("c1", "b1", 0))
	s = mustWith(t, s, column("c2", "b1", 1))
	s = mustWith(t, s, column("c3", "b2", 0))
	s = mustWith(t, s, card("k1", "c1", 0))
	s = mustWith(t, s, card("k2", "c2", 0))
	s = mustWith(t, s, card("k3", "c3", 0))
	s.CurrentBoard = "b1"

	got := s.Without(models.KindBoard, "b1")

	if _, ok := got.Boards["b1"]; ok {
		t.Errorf("board b1 survived delete")
	}
	if len(got.Columns) != 1 || got.Columns["c3"] == nil {
		t.Errorf("columns after cascade = %v, want only c3", got.Columns)
	}
	if len(got.Cards) != 1 || got.Cards["k3"] == nil {
		t.Errorf("cards after cascade = %v, want only k3", got.Cards)
	}
	if got.CurrentBoard != "" {
		t.Errorf("deleting the selected board should clear the selection")
	}
}

func TestColumnDeleteCascadesToCards(t *testing.T) {
	s := NewSnapshot()
	s = mustWith(t, s, column("c1", "b1", 0))
	s = mustWith(t, s, card("k1", "c1", 0))
	s = mustWith(t, s, card("k2", "c1", 1))
	s = mustWith(t, s, card("k3", "c2", 0))

	got := s.Without(models.KindColumn, "c1")
	if len(got.Cards) != 1 || got.Cards["k3"] == nil {
		t.Errorf("cards after cascade = %v, want only k3", got.Cards)
	}
}

func TestTagDeleteDetachesFromCards(t *testing.T) {
	s := NewSnapshot()
	s = mustWith(t, s, &models.Tag{ID: "t1", Name: "urgent"})
	s = mustWith(t, s, card("k1", "c1", 0, "t1", "t2"))
	s = mustWith(t, s, card("k2", "c1", 1))

	got := s.Without(models.KindTag, "t1")
	if _, ok := got.Tags["t1"]; ok {
		t.Errorf("tag survived delete")
	}
	if diff := cmp.Diff([]string{"t2"}, got.Cards["k1"].TagIDs); diff != "" {
		t.Errorf("k1 tags (-want +got):\n%s", diff)
	}
	// Prior snapshot keeps the attachment.
	if !s.Cards["k1"].HasTag("t1") {
		t.Errorf("prior snapshot lost the tag attachment")
	}
}

func TestCardsOfOrdersByPosition(t *testing.T) {
	s := NewSnapshot()
	s = mustWith(t, s, card("k1", "c1", 2))
	s = mustWith(t, s, card("k2", "c1", 0))
	s = mustWith(t, s, card("k3", "c1", 1))
	s = mustWith(t, s, card("k4", "c2", 0))

	got := s.CardsOf("c1")
	want := []string{"k2", "k3", "k1"}
	for i, c := range got {
		if c.ID != want[i] {
			t.Fatalf("CardsOf order = %v, want %v", ids(got), want)
		}
	}
}

func TestReplaceBoardScope(t *testing.T) {
	s := NewSnapshot()
	s = mustWith(t, s, board("b1", "one"))
	s = mustWith(t, s, column("old", "b0", 0))
	s = mustWith(t, s, card("stale", "old", 0))

	got := s.ReplaceBoardScope("b1",
		[]*models.Column{column("c1", "b1", 0)},
		[]*models.Card{card("k1", "c1", 0)},
	)
	if got.CurrentBoard != "b1" {
		t.Errorf("CurrentBoard = %q, want b1", got.CurrentBoard)
	}
	if _, ok := got.Columns["old"]; ok {
		t.Errorf("stale column survived scope replacement")
	}
	if _, ok := got.Cards["stale"]; ok {
		t.Errorf("stale card survived scope replacement")
	}
}

func ids(cards []*models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
