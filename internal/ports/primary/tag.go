package primary

import (
	"context"

	"github.com/example/deck/internal/models"
)

// TagService manages the global tag collection.
type TagService interface {
	// CreateTag creates a tag with a unique name.
	CreateTag(ctx context.Context, req CreateTagRequest) (*models.Tag, error)

	// DeleteTag deletes a tag and detaches it from every card.
	DeleteTag(ctx context.Context, id string) error

	// ListTags fetches all tags from the remote store into the snapshot
	// and returns them. Bulk fetch, toggles IsLoading.
	ListTags(ctx context.Context) ([]*models.Tag, error)
}

// CreateTagRequest carries the fields for a new tag.
type CreateTagRequest struct {
	Name  string
	Color string
}
