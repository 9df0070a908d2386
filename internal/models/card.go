package models

import (
	"slices"
	"time"
)

// Card is an ordered item within a column. Position is scoped per column.
// TagIDs references global tags; the slice never contains duplicates.
type Card struct {
	ID          string
	ColumnID    string
	Title       string
	Description string
	Position    int
	TagIDs      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Card) EntityKind() string { return KindCard }
func (c *Card) EntityID() string   { return c.ID }

// Clone returns a copy with its own TagIDs slice.
func (c *Card) Clone() *Card {
	cp := *c
	cp.TagIDs = slices.Clone(c.TagIDs)
	return &cp
}

// HasTag reports whether the card carries the given tag.
func (c *Card) HasTag(tagID string) bool {
	return slices.Contains(c.TagIDs, tagID)
}
