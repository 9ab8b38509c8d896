package mocks

import (
	"context"

	"expertbook/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Admin(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

func (m *MockDashboardService) Expert(ctx context.Context, uid string) (*model.ExpertDashboard, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExpertDashboard), args.Error(1)
}

func (m *MockDashboardService) User(ctx context.Context, uid string) (*model.UserDashboard, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserDashboard), args.Error(1)
}
