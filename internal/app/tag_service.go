package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/deck/internal/models"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
	"github.com/example/deck/internal/store"
)

// TagServiceImpl implements primary.TagService.
type TagServiceImpl struct {
	engine *Engine
}

var _ primary.TagService = (*TagServiceImpl)(nil)

// NewTagService creates a TagService backed by the given engine.
func NewTagService(engine *Engine) *TagServiceImpl {
	return &TagServiceImpl{engine: engine}
}

// CreateTag creates a tag. Names are unique across the collection.
func (s *TagServiceImpl) CreateTag(ctx context.Context, req primary.CreateTagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name must not be empty", ErrInvalid)
	}

	snap := s.engine.Store().Snapshot()
	for _, t := range snap.Tags {
		if t.Name == name {
			return nil, fmt.Errorf("%w: tag name %q already in use", ErrInvalid, name)
		}
	}

	tag := &models.Tag{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
	}

	err := s.engine.Submit("create tag",
		[]Change{{Kind: models.KindTag, ID: tag.ID, After: tag}},
		[]Call{{
			Kind: models.KindTag,
			ID:   tag.ID,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				rec, err := gw.CreateTag(ctx, tagToRecord(tag))
				if err != nil {
					return nil, err
				}
				return recordToTag(rec), nil
			},
		}},
	)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag deletes a tag and detaches it from every card holding it. The
// detached card states are part of the mutation so a remote failure
// restores the attachments too.
func (s *TagServiceImpl) DeleteTag(ctx context.Context, id string) error {
	snap := s.engine.Store().Snapshot()
	tag, ok := snap.Tags[id]
	if !ok {
		return fmt.Errorf("%w: tag %s", ErrNotFound, id)
	}

	changes := []Change{{Kind: models.KindTag, ID: id, Before: tag}}
	for _, card := range snap.Cards {
		if !card.HasTag(id) {
			continue
		}
		after := card.Clone()
		after.TagIDs = slices.DeleteFunc(after.TagIDs, func(t string) bool { return t == id })
		changes = append(changes, Change{Kind: models.KindCard, ID: card.ID, Before: card, After: after})
	}

	return s.engine.Submit("delete tag", changes,
		[]Call{{
			Kind: models.KindTag,
			ID:   id,
			Do: func(ctx context.Context, gw secondary.Gateway) (models.Entity, error) {
				return nil, gw.DeleteTag(ctx, id)
			},
		}},
	)
}

// ListTags bulk-fetches the global tag collection into the snapshot.
func (s *TagServiceImpl) ListTags(ctx context.Context) ([]*models.Tag, error) {
	s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(true) })

	recs, err := s.engine.Gateway().ListTags(ctx)
	if err != nil {
		s.engine.Update(func(sn store.Snapshot) store.Snapshot { return sn.WithLoading(false) })
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*models.Tag, len(recs))
	for i, r := range recs {
		tags[i] = recordToTag(r)
	}
	s.engine.Update(func(sn store.Snapshot) store.Snapshot {
		return sn.ReplaceTags(tags).WithLoading(false)
	})
	return s.engine.Store().Snapshot().TagList(), nil
}
