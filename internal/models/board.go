// Package models contains the domain types for deck entities.
// Persistence lives behind the Gateway port in ports/secondary.
package models

import "time"

// Entity kind constants, used to key entities across the store and engine.
const (
	KindBoard  = "board"
	KindColumn = "column"
	KindCard   = "card"
	KindTag    = "tag"
)

// Entity is implemented by every domain type held in the entity store.
type Entity interface {
	// EntityKind returns one of the Kind* constants.
	EntityKind() string
	// EntityID returns the entity's opaque id.
	EntityID() string
}

// Board is the root of a column/card tree.
type Board struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Board) EntityKind() string { return KindBoard }
func (b *Board) EntityID() string   { return b.ID }

// Clone returns a shallow copy. Entities held by a snapshot are immutable;
// mutate a clone, never the original.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}
