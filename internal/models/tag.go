package models

import "time"

// Tag is a global label attachable to any card, board-independent.
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

func (t *Tag) EntityKind() string { return KindTag }
func (t *Tag) EntityID() string   { return t.ID }

func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}
