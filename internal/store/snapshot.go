// Package store holds the in-memory mirror of board state. A Snapshot is an
// immutable value: every mutation helper returns a new Snapshot and leaves
// the receiver untouched, so callers can retain prior snapshots as history.
// Entities inside a snapshot are shared by pointer and must not be mutated
// in place; clone before editing.
package store

import (
	"errors"
	"maps"
	"sort"

	"github.com/example/deck/internal/models"
)

// ErrEmptyID rejects upserts of entities without an id. This is a
// programmer error, not a business failure.
var ErrEmptyID = errors.New("entity id must not be empty")

// Snapshot is one consistent view of all entities plus the UI-facing
// selection and loading flags.
type Snapshot struct {
	Boards  map[string]*models.Board
	Columns map[string]*models.Column
	Cards   map[string]*models.Card
	Tags    map[string]*models.Tag

	// CurrentBoard is the id of the selected board, "" when none.
	CurrentBoard string
	// IsLoading is true for the duration of bulk fetches only; individual
	// optimistic mutations never set it.
	IsLoading bool
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{
		Boards:  map[string]*models.Board{},
		Columns: map[string]*models.Column{},
		Cards:   map[string]*models.Card{},
		Tags:    map[string]*models.Tag{},
	}
}

// With upserts a single entity and returns the new snapshot.
func (s Snapshot) With(e models.Entity) (Snapshot, error) {
	if e == nil || e.EntityID() == "" {
		return s, ErrEmptyID
	}
	switch v := e.(type) {
	case *models.Board:
		s.Boards = cloneWith(s.Boards, v.ID, v)
	case *models.Column:
		s.Columns = cloneWith(s.Columns, v.ID, v)
	case *models.Card:
		s.Cards = cloneWith(s.Cards, v.ID, v)
	case *models.Tag:
		s.Tags = cloneWith(s.Tags, v.ID, v)
	default:
		return s, errors.New("unknown entity kind")
	}
	return s, nil
}

// Without removes an entity, cascading to its children: a board takes its
// columns and their cards, a column takes its cards, a tag detaches from
// every card. Removing an unknown id is a no-op. Removing the current
// board clears the selection.
func (s Snapshot) Without(kind, id string) Snapshot {
	switch kind {
	case models.KindBoard:
		if _, ok := s.Boards[id]; !ok {
			return s
		}
		s.Boards = cloneWithout(s.Boards, id)
		for _, col := range mapValues(s.Columns) {
			if col.BoardID == id {
				s = s.Without(models.KindColumn, col.ID)
			}
		}
		if s.CurrentBoard == id {
			s.CurrentBoard = ""
		}
	case models.KindColumn:
		if _, ok := s.Columns[id]; !ok {
			return s
		}
		s.Columns = cloneWithout(s.Columns, id)
		cards := maps.Clone(s.Cards)
		for cid, card := range cards {
			if card.ColumnID == id {
				delete(cards, cid)
			}
		}
		s.Cards = cards
	case models.KindCard:
		if _, ok := s.Cards[id]; !ok {
			return s
		}
		s.Cards = cloneWithout(s.Cards, id)
	case models.KindTag:
		if _, ok := s.Tags[id]; !ok {
			return s
		}
		s.Tags = cloneWithout(s.Tags, id)
		cards := maps.Clone(s.Cards)
		for cid, card := range cards {
			if card.HasTag(id) {
				c := card.Clone()
				c.TagIDs = without(c.TagIDs, id)
				cards[cid] = c
			}
		}
		s.Cards = cards
	}
	return s
}

// Rekey replaces the entity stored under oldID with e, re-pointing child
// references at e's id. Used when the remote store substitutes its own
// generated id for the optimistically chosen one.
func (s Snapshot) Rekey(kind, oldID string, e models.Entity) (Snapshot, error) {
	if e == nil || e.EntityID() == "" {
		return s, ErrEmptyID
	}
	newID := e.EntityID()
	switch kind {
	case models.KindBoard:
		s.Boards = cloneWithout(s.Boards, oldID)
		cols := maps.Clone(s.Columns)
		for id, c := range cols {
			if c.BoardID == oldID {
				cc := c.Clone()
				cc.BoardID = newID
				cols[id] = cc
			}
		}
		s.Columns = cols
		if s.CurrentBoard == oldID {
			s.CurrentBoard = newID
		}
	case models.KindColumn:
		s.Columns = cloneWithout(s.Columns, oldID)
		cards := maps.Clone(s.Cards)
		for id, c := range cards {
			if c.ColumnID == oldID {
				cc := c.Clone()
				cc.ColumnID = newID
				cards[id] = cc
			}
		}
		s.Cards = cards
	case models.KindCard:
		s.Cards = cloneWithout(s.Cards, oldID)
	case models.KindTag:
		s.Tags = cloneWithout(s.Tags, oldID)
		cards := maps.Clone(s.Cards)
		for id, c := range cards {
			if c.HasTag(oldID) {
				cc := c.Clone()
				cc.TagIDs = without(cc.TagIDs, oldID)
				if !cc.HasTag(newID) {
					cc.TagIDs = append(cc.TagIDs, newID)
				}
				cards[id] = cc
			}
		}
		s.Cards = cards
	}
	return s.With(e)
}

// Entity looks up an entity by kind and id.
func (s Snapshot) Entity(kind, id string) (models.Entity, bool) {
	switch kind {
	case models.KindBoard:
		if b, ok := s.Boards[id]; ok {
			return b, true
		}
	case models.KindColumn:
		if c, ok := s.Columns[id]; ok {
			return c, true
		}
	case models.KindCard:
		if c, ok := s.Cards[id]; ok {
			return c, true
		}
	case models.KindTag:
		if t, ok := s.Tags[id]; ok {
			return t, true
		}
	}
	return nil, false
}

// ReplaceBoards swaps the whole board collection (bulk fetch result).
func (s Snapshot) ReplaceBoards(boards []*models.Board) Snapshot {
	m := make(map[string]*models.Board, len(boards))
	for _, b := range boards {
		m[b.ID] = b
	}
	s.Boards = m
	return s
}

// ReplaceTags swaps the whole tag collection (bulk fetch result).
func (s Snapshot) ReplaceTags(tags []*models.Tag) Snapshot {
	m := make(map[string]*models.Tag, len(tags))
	for _, t := range tags {
		m[t.ID] = t
	}
	s.Tags = m
	return s
}

// ReplaceBoardScope installs a freshly fetched board subtree and selects
// it, dropping whatever columns and cards were loaded before.
func (s Snapshot) ReplaceBoardScope(boardID string, columns []*models.Column, cards []*models.Card) Snapshot {
	cm := make(map[string]*models.Column, len(columns))
	for _, c := range columns {
		cm[c.ID] = c
	}
	km := make(map[string]*models.Card, len(cards))
	for _, c := range cards {
		km[c.ID] = c
	}
	s.Columns = cm
	s.Cards = km
	s.CurrentBoard = boardID
	return s
}

// ClearBoardScope drops the selection along with its columns and cards.
func (s Snapshot) ClearBoardScope() Snapshot {
	s.Columns = map[string]*models.Column{}
	s.Cards = map[string]*models.Card{}
	s.CurrentBoard = ""
	return s
}

// WithLoading toggles the bulk-fetch flag.
func (s Snapshot) WithLoading(loading bool) Snapshot {
	s.IsLoading = loading
	return s
}

// Current returns the selected board, nil when none.
func (s Snapshot) Current() *models.Board {
	if s.CurrentBoard == "" {
		return nil
	}
	return s.Boards[s.CurrentBoard]
}

// BoardList returns all boards sorted by creation time, then id.
func (s Snapshot) BoardList() []*models.Board {
	out := mapValues(s.Boards)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ColumnsOf returns a board's columns in display order.
func (s Snapshot) ColumnsOf(boardID string) []*models.Column {
	var out []*models.Column
	for _, c := range s.Columns {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CardsOf returns a column's cards in display order.
func (s Snapshot) CardsOf(columnID string) []*models.Card {
	var out []*models.Card
	for _, c := range s.Cards {
		if c.ColumnID == columnID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TagList returns all tags sorted by name.
func (s Snapshot) TagList() []*models.Tag {
	out := mapValues(s.Tags)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func cloneWith[V any](m map[string]V, id string, v V) map[string]V {
	out := maps.Clone(m)
	if out == nil {
		out = map[string]V{}
	}
	out[id] = v
	return out
}

func cloneWithout[V any](m map[string]V, id string) map[string]V {
	out := maps.Clone(m)
	delete(out, id)
	return out
}

func mapValues[V any](m map[string]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
