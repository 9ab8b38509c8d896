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

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error)
	// Delete fails with ErrCategoryInUse while experts reference the category.
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, now: time.Now}
}

func (in *CategoryInput) clean() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return requireFields("name", in.Name, "description", in.Description)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if err := in.clean(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	})
}

func (s *categoryService) Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	if err := in.clean(); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}
	c.Name, c.Description = in.Name, in.Description
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, notFound(err, "category")
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrReferenced) {
		return ErrCategoryInUse
	}
	return notFound(err, "category")
}
