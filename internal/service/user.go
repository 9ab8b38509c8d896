package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

// UserInput is the admin form for an account.
type UserInput struct {
	DisplayName string
	Email       string
	Role        model.Role
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items []model.User `json:"data"`
	Total int          `json:"total"`
}

type UserService interface {
	List(ctx context.Context, limit, offset int) (*UserListResult, error)
	Get(ctx context.Context, id string) (*model.User, error)
	// Create adds an account without a password; it cannot sign in until a
	// password is set.
	Create(ctx context.Context, in UserInput) (*model.User, error)
	Update(ctx context.Context, id string, in UserInput) (*model.User, error)
	UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error)
	// ToggleRole flips admin to user and any other role to admin.
	ToggleRole(ctx context.Context, id string) (*model.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (in *UserInput) clean() error {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Email = normalizeEmail(in.Email)
	if err := requireFields("display_name", in.DisplayName, "email", in.Email); err != nil {
		return err
	}
	if err := checkEmail(in.Email); err != nil {
		return err
	}
	if in.Role != "" && !in.Role.Valid() {
		return invalid("role %q is not supported", in.Role)
	}
	return nil
}

func (s *userService) List(ctx context.Context, limit, offset int) (*UserListResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if err := in.clean(); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	u, err := s.repo.Create(ctx, &model.User{
		ID:          uuid.NewString(),
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Role:        in.Role,
		CreatedAt:   s.now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return u, err
}

func (s *userService) Update(ctx context.Context, id string, in UserInput) (*model.User, error) {
	if err := in.clean(); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	u.DisplayName, u.Email = in.DisplayName, in.Email
	if in.Role != "" {
		u.Role = in.Role
	}
	err = s.repo.Update(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *userService) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, invalid("role %q is not supported", role)
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if u.Role == role {
		return u, nil
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, notFound(err, "user")
	}
	u.Role = role
	return u, nil
}

func (s *userService) ToggleRole(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	next := model.RoleAdmin
	if u.Role == model.RoleAdmin {
		next = model.RoleUser
	}
	if err := s.repo.UpdateRole(ctx, id, next); err != nil {
		return nil, notFound(err, "user")
	}
	u.Role = next
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.Delete(ctx, id), "user")
}

func (s *userService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
