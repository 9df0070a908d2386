// Package sqlite implements the Gateway port on a local SQLite database.
// It doubles as the storage layer of the reference server and as the
// remote store for the CLI's local mode.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/deck/internal/ports/secondary"
)

// Gateway implements secondary.Gateway with SQLite.
type Gateway struct {
	db *sql.DB
}

var _ secondary.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway over an opened database (see internal/db).
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// CreateBoard persists a new board.
func (g *Gateway) CreateBoard(ctx context.Context, b *secondary.BoardRecord) (*secondary.BoardRecord, error) {
	now := time.Now().UTC()
	rec := *b
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := g.db.ExecContext(ctx,
		"INSERT INTO boards (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		rec.ID, rec.Title, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &rec, nil
}

// UpdateBoard applies a partial update and returns the stored record.
func (g *Gateway) UpdateBoard(ctx context.Context, id string, f secondary.BoardFields) (*secondary.BoardRecord, error) {
	if f.Title != nil {
		res, err := g.db.ExecContext(ctx,
			"UPDATE boards SET title = ?, updated_at = ? WHERE id = ?",
			*f.Title, time.Now().UTC(), id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update board: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, fmt.Errorf("board %s not found", id)
		}
	}
	return g.getBoard(ctx, id)
}

// DeleteBoard removes a board; columns and cards cascade via foreign keys.
func (g *Gateway) DeleteBoard(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("board %s not found", id)
	}
	return nil
}

// ListBoards retrieves all boards, oldest first.
func (g *Gateway) ListBoards(ctx context.Context) ([]*secondary.BoardRecord, error) {
	rows, err := g.db.QueryContext(ctx,
		"SELECT id, title, created_at, updated_at FROM boards ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var out []*secondary.BoardRecord
	for rows.Next() {
		rec := &secondary.BoardRecord{}
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (g *Gateway) getBoard(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	rec := &secondary.BoardRecord{}
	err := g.db.QueryRowContext(ctx,
		"SELECT id, title, created_at, updated_at FROM boards WHERE id = ?", id,
	).Scan(&rec.ID, &rec.Title, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("board %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return rec, nil
}

// CreateColumn persists a new column after validating its board.
func (g *Gateway) CreateColumn(ctx context.Context, c *secondary.ColumnRecord) (*secondary.ColumnRecord, error) {
	now := time.Now().UTC()
	rec := *c
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := g.db.ExecContext(ctx,
		"INSERT INTO columns (id, board_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.BoardID, rec.Title, rec.Position, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return &rec, nil
}

// UpdateColumn applies a partial update and returns the stored record.
func (g *Gateway) UpdateColumn(ctx context.Context, id string, f secondary.ColumnFields) (*secondary.ColumnRecord, error) {
	if f.Title != nil || f.Position != nil {
		query := "UPDATE columns SET updated_at = ?"
		args := []any{time.Now().UTC()}
		if f.Title != nil {
			query += ", title = ?"
			args = append(args, *f.Title)
		}
		if f.Position != nil {
			query += ", position = ?"
			args = append(args, *f.Position)
		}
		query += " WHERE id = ?"
		args = append(args, id)

		res, err := g.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update column: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, fmt.Errorf("column %s not found", id)
		}
	}

	rec := &secondary.ColumnRecord{}
	err := g.db.QueryRowContext(ctx,
		"SELECT id, board_id, title, position, created_at, updated_at FROM columns WHERE id = ?", id,
	).Scan(&rec.ID, &rec.BoardID, &rec.Title, &rec.Position, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("column %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	return rec, nil
}

// DeleteColumn removes a column; its cards cascade.
func (g *Gateway) DeleteColumn(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM columns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("column %s not found", id)
	}
	return nil
}

// ListColumns retrieves a board's columns ordered by position.
func (g *Gateway) ListColumns(ctx context.Context, boardID string) ([]*secondary.ColumnRecord, error) {
	rows, err := g.db.QueryContext(ctx,
		"SELECT id, board_id, title, position, created_at, updated_at FROM columns WHERE board_id = ? ORDER BY position ASC, id ASC",
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var out []*secondary.ColumnRecord
	for rows.Next() {
		rec := &secondary.ColumnRecord{}
		if err := rows.Scan(&rec.ID, &rec.BoardID, &rec.Title, &rec.Position, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CreateCard persists a new card.
func (g *Gateway) CreateCard(ctx context.Context, c *secondary.CardRecord) (*secondary.CardRecord, error) {
	now := time.Now().UTC()
	rec := *c
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	var desc sql.NullString
	if rec.Description != "" {
		desc = sql.NullString{String: rec.Description, Valid: true}
	}

	_, err := g.db.ExecContext(ctx,
		"INSERT INTO cards (id, column_id, title, description, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.ColumnID, rec.Title, desc, rec.Position, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &rec, nil
}

// UpdateCard applies a partial update and returns the stored record.
func (g *Gateway) UpdateCard(ctx context.Context, id string, f secondary.CardFields) (*secondary.CardRecord, error) {
	if f.Title != nil || f.Description != nil || f.ColumnID != nil || f.Position != nil {
		query := "UPDATE cards SET updated_at = ?"
		args := []any{time.Now().UTC()}
		if f.Title != nil {
			query += ", title = ?"
			args = append(args, *f.Title)
		}
		if f.Description != nil {
			query += ", description = ?"
			args = append(args, *f.Description)
		}
		if f.ColumnID != nil {
			query += ", column_id = ?"
			args = append(args, *f.ColumnID)
		}
		if f.Position != nil {
			query += ", position = ?"
			args = append(args, *f.Position)
		}
		query += " WHERE id = ?"
		args = append(args, id)

		res, err := g.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update card: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, fmt.Errorf("card %s not found", id)
		}
	}
	return g.getCard(ctx, id)
}

// DeleteCard removes a card; its tag associations cascade.
func (g *Gateway) DeleteCard(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("card %s not found", id)
	}
	return nil
}

// ListCards retrieves every card of a board ordered by position, with tag
// ids populated.
func (g *Gateway) ListCards(ctx context.Context, boardID string) ([]*secondary.CardRecord, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT c.id, c.column_id, c.title, c.description, c.position, c.created_at, c.updated_at
		FROM cards c
		JOIN columns col ON col.id = c.column_id
		WHERE col.board_id = ?
		ORDER BY c.position ASC, c.id ASC`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var out []*secondary.CardRecord
	byID := map[string]*secondary.CardRecord{}
	for rows.Next() {
		rec := &secondary.CardRecord{}
		var desc sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ColumnID, &rec.Title, &desc, &rec.Position, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		rec.Description = desc.String
		out = append(out, rec)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := g.db.QueryContext(ctx, `
		SELECT ct.card_id, ct.tag_id
		FROM card_tags ct
		JOIN cards c ON c.id = ct.card_id
		JOIN columns col ON col.id = c.column_id
		WHERE col.board_id = ?
		ORDER BY ct.tag_id ASC`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list card tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var cardID, tagID string
		if err := tagRows.Scan(&cardID, &tagID); err != nil {
			return nil, fmt.Errorf("failed to scan card tag: %w", err)
		}
		if rec, ok := byID[cardID]; ok {
			rec.TagIDs = append(rec.TagIDs, tagID)
		}
	}
	return out, tagRows.Err()
}

func (g *Gateway) getCard(ctx context.Context, id string) (*secondary.CardRecord, error) {
	rec := &secondary.CardRecord{}
	var desc sql.NullString
	err := g.db.QueryRowContext(ctx,
		"SELECT id, column_id, title, description, position, created_at, updated_at FROM cards WHERE id = ?", id,
	).Scan(&rec.ID, &rec.ColumnID, &rec.Title, &desc, &rec.Position, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	rec.Description = desc.String
	return rec, nil
}

// CreateTag persists a new tag. Names are unique.
func (g *Gateway) CreateTag(ctx context.Context, t *secondary.TagRecord) (*secondary.TagRecord, error) {
	rec := *t
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var color sql.NullString
	if rec.Color != "" {
		color = sql.NullString{String: rec.Color, Valid: true}
	}

	_, err := g.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, color, created_at) VALUES (?, ?, ?, ?)",
		rec.ID, rec.Name, color, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &rec, nil
}

// DeleteTag removes a tag; its card associations cascade.
func (g *Gateway) DeleteTag(ctx context.Context, id string) error {
	res, err := g.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %s not found", id)
	}
	return nil
}

// ListTags retrieves all tags ordered by name.
func (g *Gateway) ListTags(ctx context.Context) ([]*secondary.TagRecord, error) {
	rows, err := g.db.QueryContext(ctx,
		"SELECT id, name, color, created_at FROM tags ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var out []*secondary.TagRecord
	for rows.Next() {
		rec := &secondary.TagRecord{}
		var color sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &color, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		rec.Color = color.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AttachTag associates a tag with a card. Repeated attaches are no-ops.
func (g *Gateway) AttachTag(ctx context.Context, cardID, tagID string) error {
	_, err := g.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO card_tags (card_id, tag_id) VALUES (?, ?)",
		cardID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

// DetachTag removes a card/tag association. Absent associations are no-ops.
func (g *Gateway) DetachTag(ctx context.Context, cardID, tagID string) error {
	_, err := g.db.ExecContext(ctx,
		"DELETE FROM card_tags WHERE card_id = ? AND tag_id = ?",
		cardID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	return nil
}
