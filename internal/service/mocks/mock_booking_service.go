package mocks

import (
	"context"
	"time"

	"expertbook/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) booking(args mock.Arguments) (*model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) bookings(args mock.Arguments) ([]model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, userID, expertID string, at time.Time) (*model.Booking, error) {
	return m.booking(m.Called(ctx, userID, expertID, at))
}

func (m *MockBookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return m.bookings(m.Called(ctx, userID))
}

func (m *MockBookingService) ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error) {
	return m.bookings(m.Called(ctx, expertID))
}

func (m *MockBookingService) Reschedule(ctx context.Context, userID, bookingID string, at time.Time) (*model.Booking, error) {
	return m.booking(m.Called(ctx, userID, bookingID, at))
}

func (m *MockBookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func (m *MockBookingService) Accept(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error) {
	return m.booking(m.Called(ctx, expertUserID, bookingID))
}

func (m *MockBookingService) Decline(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error) {
	return m.booking(m.Called(ctx, expertUserID, bookingID))
}

func (m *MockBookingService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingService) BackfillUsers(ctx context.Context) (*model.BackfillResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackfillResult), args.Error(1)
}
