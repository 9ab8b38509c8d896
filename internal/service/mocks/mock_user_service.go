package mocks

import (
	"context"

	"expertbook/internal/model"
	"expertbook/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, limit, offset int) (*service.UserListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserListResult), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Create(ctx context.Context, in service.UserInput) (*model.User, error) {
	return m.user(m.Called(ctx, in))
}

func (m *MockUserService) Update(ctx context.Context, id string, in service.UserInput) (*model.User, error) {
	return m.user(m.Called(ctx, id, in))
}

func (m *MockUserService) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	return m.user(m.Called(ctx, id, role))
}

func (m *MockUserService) ToggleRole(ctx context.Context, id string) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
