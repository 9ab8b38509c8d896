package mocks

import (
	"context"
	"time"

	"expertbook/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) booking(args mock.Arguments) (*model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) bookings(args mock.Arguments) ([]model.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	return m.booking(m.Called(ctx, b))
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.booking(m.Called(ctx, id))
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return m.bookings(m.Called(ctx, userID))
}

func (m *MockBookingRepository) ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error) {
	return m.bookings(m.Called(ctx, expertID))
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	return m.bookings(m.Called(ctx))
}

func (m *MockBookingRepository) Reschedule(ctx context.Context, id string, at time.Time, status model.BookingStatus) (*model.Booking, error) {
	return m.booking(m.Called(ctx, id, at, status))
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error) {
	return m.booking(m.Called(ctx, id, from, to))
}

func (m *MockBookingRepository) UpdateUserSnapshot(ctx context.Context, id, displayName, email string) error {
	args := m.Called(ctx, id, displayName, email)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
