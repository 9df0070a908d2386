package store

import (
	"testing"

	"github.com/example/deck/internal/models"
)

func TestSwapNotifiesOncePerLogicalOperation(t *testing.T) {
	s := New()
	var notified int
	s.Subscribe(func(Snapshot) { notified++ })

	// One logical operation touching three entities: one Swap, one event.
	snap := s.Snapshot()
	snap, _ = snap.With(&models.Board{ID: "b1", Title: "one"})
	snap, _ = snap.With(&models.Column{ID: "c1", BoardID: "b1"})
	snap, _ = snap.With(&models.Card{ID: "k1", ColumnID: "c1"})
	s.Swap(snap)

	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
	if s.Snapshot().Cards["k1"] == nil {
		t.Errorf("swap did not install the new snapshot")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := New()
	var a, b int
	unsub := s.Subscribe(func(Snapshot) { a++ })
	s.Subscribe(func(Snapshot) { b++ })

	s.Swap(s.Snapshot())
	unsub()
	s.Swap(s.Snapshot())

	if a != 1 {
		t.Errorf("unsubscribed observer notified %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining observer notified %d times, want 2", b)
	}
}
