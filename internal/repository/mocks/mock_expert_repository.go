package mocks

import (
	"context"

	"expertbook/internal/model"
	"expertbook/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockExpertRepository struct {
	mock.Mock
}

func (m *MockExpertRepository) Create(ctx context.Context, e *model.Expert) (*model.Expert, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expert), args.Error(1)
}

func (m *MockExpertRepository) FindByID(ctx context.Context, id string) (*model.Expert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expert), args.Error(1)
}

func (m *MockExpertRepository) FindByUserID(ctx context.Context, userID string) (*model.Expert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expert), args.Error(1)
}

func (m *MockExpertRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Expert, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expert), args.Error(1)
}

func (m *MockExpertRepository) List(ctx context.Context, f repository.ExpertFilter) ([]model.Expert, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expert), args.Error(1)
}

func (m *MockExpertRepository) Update(ctx context.Context, e *model.Expert) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpertRepository) UpdateAvatar(ctx context.Context, id, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockExpertRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpertRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
