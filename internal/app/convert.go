package app

import (
	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/secondary"
)

func boardToRecord(b *models.Board) *secondary.BoardRecord {
	return &secondary.BoardRecord{
		ID:        b.ID,
		Title:     b.Title,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func recordToBoard(r *secondary.BoardRecord) *models.Board {
	return &models.Board{
		ID:        r.ID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func columnToRecord(c *models.Column) *secondary.ColumnRecord {
	return &secondary.ColumnRecord{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Title:     c.Title,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func recordToColumn(r *secondary.ColumnRecord) *models.Column {
	return &models.Column{
		ID:        r.ID,
		BoardID:   r.BoardID,
		Title:     r.Title,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func cardToRecord(c *models.Card) *secondary.CardRecord {
	return &secondary.CardRecord{
		ID:          c.ID,
		ColumnID:    c.ColumnID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		TagIDs:      append([]string(nil), c.TagIDs...),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func recordToCard(r *secondary.CardRecord) *models.Card {
	return &models.Card{
		ID:          r.ID,
		ColumnID:    r.ColumnID,
		Title:       r.Title,
		Description: r.Description,
		Position:    r.Position,
		TagIDs:      append([]string(nil), r.TagIDs...),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func tagToRecord(t *models.Tag) *secondary.TagRecord {
	return &secondary.TagRecord{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

func recordToTag(r *secondary.TagRecord) *models.Tag {
	return &models.Tag{
		ID:        r.ID,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: r.CreatedAt,
	}
}

func ptr[T any](v T) *T {
	return &v
}
