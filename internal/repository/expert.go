package repository

import (
	"context"

	"expertbook/internal/model"
)

// ExpertFilter narrows List. Zero value lists everything.
type ExpertFilter struct {
	CategoryID string
}

// ExpertRepository persists expert profiles.
type ExpertRepository interface {
	Create(ctx context.Context, e *model.Expert) (*model.Expert, error)
	FindByID(ctx context.Context, id string) (*model.Expert, error)
	FindByUserID(ctx context.Context, userID string) (*model.Expert, error)
	// FindByIDs returns the experts that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]model.Expert, error)
	// List returns experts ordered by name.
	List(ctx context.Context, f ExpertFilter) ([]model.Expert, error)
	Update(ctx context.Context, e *model.Expert) error
	UpdateAvatar(ctx context.Context, id, path string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
