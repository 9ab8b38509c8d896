package repository

import (
	"context"

	"expertbook/internal/model"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	// Delete returns ErrReferenced while experts still belong to the category.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
