package server

import (
	"strings"
	"time"

	"github.com/example/deck/internal/ports/secondary"
)

type boardDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type columnDTO struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type cardDTO struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	TagIDs      []string  `json:"tagIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type tagDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type boardFieldsDTO struct {
	Title *string `json:"title"`
}

type columnFieldsDTO struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

type cardFieldsDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ColumnID    *string `json:"columnId"`
	Position    *int    `json:"position"`
}

func toBoardDTO(b *secondary.BoardRecord) boardDTO {
	return boardDTO{ID: b.ID, Title: b.Title, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

func fromBoardDTO(d boardDTO) *secondary.BoardRecord {
	return &secondary.BoardRecord{ID: d.ID, Title: d.Title, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

func toColumnDTO(c *secondary.ColumnRecord) columnDTO {
	return columnDTO{
		ID: c.ID, BoardID: c.BoardID, Title: c.Title, Position: c.Position,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func fromColumnDTO(d columnDTO) *secondary.ColumnRecord {
	return &secondary.ColumnRecord{
		ID: d.ID, BoardID: d.BoardID, Title: d.Title, Position: d.Position,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func toCardDTO(c *secondary.CardRecord) cardDTO {
	return cardDTO{
		ID: c.ID, ColumnID: c.ColumnID, Title: c.Title, Description: c.Description,
		Position: c.Position, TagIDs: c.TagIDs,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func fromCardDTO(d cardDTO) *secondary.CardRecord {
	return &secondary.CardRecord{
		ID: d.ID, ColumnID: d.ColumnID, Title: d.Title, Description: d.Description,
		Position: d.Position, TagIDs: d.TagIDs,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func toTagDTO(t *secondary.TagRecord) tagDTO {
	return tagDTO{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

func fromTagDTO(d tagDTO) *secondary.TagRecord {
	return &secondary.TagRecord{ID: d.ID, Name: d.Name, Color: d.Color, CreatedAt: d.CreatedAt}
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
