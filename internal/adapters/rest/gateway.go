// Package rest implements the Gateway port against the deck HTTP API
// (see internal/server). This is the adapter remote mode runs on.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/deck/internal/ports/secondary"
)

// Gateway implements secondary.Gateway over HTTP.
type Gateway struct {
	base   string
	client *http.Client
}

var _ secondary.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway for the server at baseURL.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

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

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: server returned %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// CreateBoard persists a new board.
func (g *Gateway) CreateBoard(ctx context.Context, b *secondary.BoardRecord) (*secondary.BoardRecord, error) {
	in := boardDTO{ID: b.ID, Title: b.Title}
	var out boardDTO
	if err := g.do(ctx, http.MethodPost, "/api/boards", in, &out); err != nil {
		return nil, err
	}
	return boardFromDTO(out), nil
}

// UpdateBoard applies a partial update.
func (g *Gateway) UpdateBoard(ctx context.Context, id string, f secondary.BoardFields) (*secondary.BoardRecord, error) {
	var out boardDTO
	path := "/api/boards/" + url.PathEscape(id)
	if err := g.do(ctx, http.MethodPatch, path, map[string]any{"title": f.Title}, &out); err != nil {
		return nil, err
	}
	return boardFromDTO(out), nil
}

// DeleteBoard removes a board and everything under it.
func (g *Gateway) DeleteBoard(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/boards/"+url.PathEscape(id), nil, nil)
}

// ListBoards retrieves all boards.
func (g *Gateway) ListBoards(ctx context.Context) ([]*secondary.BoardRecord, error) {
	var dtos []boardDTO
	if err := g.do(ctx, http.MethodGet, "/api/boards", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]*secondary.BoardRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, boardFromDTO(d))
	}
	return out, nil
}

// CreateColumn persists a new column.
func (g *Gateway) CreateColumn(ctx context.Context, c *secondary.ColumnRecord) (*secondary.ColumnRecord, error) {
	in := columnDTO{ID: c.ID, BoardID: c.BoardID, Title: c.Title, Position: c.Position}
	var out columnDTO
	if err := g.do(ctx, http.MethodPost, "/api/columns", in, &out); err != nil {
		return nil, err
	}
	return columnFromDTO(out), nil
}

// UpdateColumn applies a partial update.
func (g *Gateway) UpdateColumn(ctx context.Context, id string, f secondary.ColumnFields) (*secondary.ColumnRecord, error) {
	fields := map[string]any{}
	if f.Title != nil {
		fields["title"] = *f.Title
	}
	if f.Position != nil {
		fields["position"] = *f.Position
	}
	var out columnDTO
	path := "/api/columns/" + url.PathEscape(id)
	if err := g.do(ctx, http.MethodPatch, path, fields, &out); err != nil {
		return nil, err
	}
	return columnFromDTO(out), nil
}

// DeleteColumn removes a column and its cards.
func (g *Gateway) DeleteColumn(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/columns/"+url.PathEscape(id), nil, nil)
}

// ListColumns retrieves a board's columns ordered by position.
func (g *Gateway) ListColumns(ctx context.Context, boardID string) ([]*secondary.ColumnRecord, error) {
	var dtos []columnDTO
	path := "/api/boards/" + url.PathEscape(boardID) + "/columns"
	if err := g.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]*secondary.ColumnRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, columnFromDTO(d))
	}
	return out, nil
}

// CreateCard persists a new card.
func (g *Gateway) CreateCard(ctx context.Context, c *secondary.CardRecord) (*secondary.CardRecord, error) {
	in := cardDTO{ID: c.ID, ColumnID: c.ColumnID, Title: c.Title, Description: c.Description, Position: c.Position}
	var out cardDTO
	if err := g.do(ctx, http.MethodPost, "/api/cards", in, &out); err != nil {
		return nil, err
	}
	return cardFromDTO(out), nil
}

// UpdateCard applies a partial update.
func (g *Gateway) UpdateCard(ctx context.Context, id string, f secondary.CardFields) (*secondary.CardRecord, error) {
	fields := map[string]any{}
	if f.Title != nil {
		fields["title"] = *f.Title
	}
	if f.Description != nil {
		fields["description"] = *f.Description
	}
	if f.ColumnID != nil {
		fields["columnId"] = *f.ColumnID
	}
	if f.Position != nil {
		fields["position"] = *f.Position
	}
	var out cardDTO
	path := "/api/cards/" + url.PathEscape(id)
	if err := g.do(ctx, http.MethodPatch, path, fields, &out); err != nil {
		return nil, err
	}
	return cardFromDTO(out), nil
}

// DeleteCard removes a card.
func (g *Gateway) DeleteCard(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/cards/"+url.PathEscape(id), nil, nil)
}

// ListCards retrieves every card of a board with tag ids populated.
func (g *Gateway) ListCards(ctx context.Context, boardID string) ([]*secondary.CardRecord, error) {
	var dtos []cardDTO
	path := "/api/boards/" + url.PathEscape(boardID) + "/cards"
	if err := g.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]*secondary.CardRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, cardFromDTO(d))
	}
	return out, nil
}

// CreateTag persists a new tag.
func (g *Gateway) CreateTag(ctx context.Context, t *secondary.TagRecord) (*secondary.TagRecord, error) {
	in := tagDTO{ID: t.ID, Name: t.Name, Color: t.Color}
	var out tagDTO
	if err := g.do(ctx, http.MethodPost, "/api/tags", in, &out); err != nil {
		return nil, err
	}
	return tagFromDTO(out), nil
}

// DeleteTag removes a tag everywhere.
func (g *Gateway) DeleteTag(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/tags/"+url.PathEscape(id), nil, nil)
}

// ListTags retrieves all tags.
func (g *Gateway) ListTags(ctx context.Context) ([]*secondary.TagRecord, error) {
	var dtos []tagDTO
	if err := g.do(ctx, http.MethodGet, "/api/tags", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]*secondary.TagRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, tagFromDTO(d))
	}
	return out, nil
}

// AttachTag associates a tag with a card.
func (g *Gateway) AttachTag(ctx context.Context, cardID, tagID string) error {
	path := "/api/cards/" + url.PathEscape(cardID) + "/tags/" + url.PathEscape(tagID)
	return g.do(ctx, http.MethodPut, path, nil, nil)
}

// DetachTag removes a card/tag association.
func (g *Gateway) DetachTag(ctx context.Context, cardID, tagID string) error {
	path := "/api/cards/" + url.PathEscape(cardID) + "/tags/" + url.PathEscape(tagID)
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

func boardFromDTO(d boardDTO) *secondary.BoardRecord {
	return &secondary.BoardRecord{ID: d.ID, Title: d.Title, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

func columnFromDTO(d columnDTO) *secondary.ColumnRecord {
	return &secondary.ColumnRecord{
		ID: d.ID, BoardID: d.BoardID, Title: d.Title, Position: d.Position,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func cardFromDTO(d cardDTO) *secondary.CardRecord {
	return &secondary.CardRecord{
		ID: d.ID, ColumnID: d.ColumnID, Title: d.Title, Description: d.Description,
		Position: d.Position, TagIDs: d.TagIDs,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func tagFromDTO(d tagDTO) *secondary.TagRecord {
	return &secondary.TagRecord{ID: d.ID, Name: d.Name, Color: d.Color, CreatedAt: d.CreatedAt}
}
