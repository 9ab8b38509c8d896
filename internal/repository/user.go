package repository

import (
	"context"

	"expertbook/internal/model"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a user; ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)
	// Update writes display name, email and role.
	Update(ctx context.Context, u *model.User) error
	UpdateRole(ctx context.Context, id string, role model.Role) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
