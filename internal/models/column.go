package models

import "time"

// Column is an ordered lane within a board. Position is scoped per board:
// no two columns of one board share a position value.
type Column struct {
	ID        string
	BoardID   string
	Title     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Column) EntityKind() string { return KindColumn }
func (c *Column) EntityID() string   { return c.ID }

func (c *Column) Clone() *Column {
	cp := *c
	return &cp
}
