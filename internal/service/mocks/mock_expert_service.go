package mocks

import (
	"context"
	"io"

	"expertbook/internal/model"
	"expertbook/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockExpertService struct {
	mock.Mock
}

func (m *MockExpertService) expert(args mock.Arguments) (*model.Expert, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expert), args.Error(1)
}

func (m *MockExpertService) List(ctx context.Context, categoryID, term string) ([]model.ExpertView, error) {
	args := m.Called(ctx, categoryID, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExpertView), args.Error(1)
}

func (m *MockExpertService) Get(ctx context.Context, id string) (*model.ExpertView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExpertView), args.Error(1)
}

func (m *MockExpertService) GetByUserID(ctx context.Context, uid string) (*model.Expert, error) {
	return m.expert(m.Called(ctx, uid))
}

func (m *MockExpertService) Create(ctx context.Context, in service.ExpertInput) (*model.Expert, error) {
	return m.expert(m.Called(ctx, in))
}

func (m *MockExpertService) Update(ctx context.Context, id string, in service.ExpertInput) (*model.Expert, error) {
	return m.expert(m.Called(ctx, id, in))
}

func (m *MockExpertService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpertService) UploadAvatar(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Expert, error) {
	return m.expert(m.Called(ctx, id, r, filename, contentType, size))
}

func (m *MockExpertService) AvatarURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
