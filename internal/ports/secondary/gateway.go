// Package secondary defines the secondary ports (driven adapters) for deck.
// These are the interfaces through which the application drives external
// systems, chiefly the remote store behind the Gateway contract.
package secondary

import (
	"context"
	"time"
)

// Gateway is the remote-store contract. Calls may fail independently of
// local validity (network, rejection); the synchronization engine owns
// ordering and never assumes two in-flight calls complete in issue order.
//
// List* results are ordered by position ascending where the kind carries one.
type Gateway interface {
	CreateBoard(ctx context.Context, board *BoardRecord) (*BoardRecord, error)
	UpdateBoard(ctx context.Context, id string, fields BoardFields) (*BoardRecord, error)
	DeleteBoard(ctx context.Context, id string) error
	ListBoards(ctx context.Context) ([]*BoardRecord, error)

	CreateColumn(ctx context.Context, column *ColumnRecord) (*ColumnRecord, error)
	UpdateColumn(ctx context.Context, id string, fields ColumnFields) (*ColumnRecord, error)
	DeleteColumn(ctx context.Context, id string) error
	ListColumns(ctx context.Context, boardID string) ([]*ColumnRecord, error)

	CreateCard(ctx context.Context, card *CardRecord) (*CardRecord, error)
	UpdateCard(ctx context.Context, id string, fields CardFields) (*CardRecord, error)
	DeleteCard(ctx context.Context, id string) error
	ListCards(ctx context.Context, boardID string) ([]*CardRecord, error)

	CreateTag(ctx context.Context, tag *TagRecord) (*TagRecord, error)
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]*TagRecord, error)

	AttachTag(ctx context.Context, cardID, tagID string) error
	DetachTag(ctx context.Context, cardID, tagID string) error
}

// BoardRecord represents a board as stored remotely.
type BoardRecord struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ColumnRecord represents a column as stored remotely.
type ColumnRecord struct {
	ID        string
	BoardID   string
	Title     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardRecord represents a card as stored remotely. TagIDs is populated on
// list reads; attach/detach go through AttachTag/DetachTag.
type CardRecord struct {
	ID          string
	ColumnID    string
	Title       string
	Description string
	Position    int
	TagIDs      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagRecord represents a tag as stored remotely.
type TagRecord struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

// BoardFields is a partial update; nil fields are left untouched.
type BoardFields struct {
	Title *string
}

// ColumnFields is a partial update; nil fields are left untouched.
type ColumnFields struct {
	Title    *string
	Position *int
}

// CardFields is a partial update; nil fields are left untouched.
type CardFields struct {
	Title       *string
	Description *string
	ColumnID    *string
	Position    *int
}
