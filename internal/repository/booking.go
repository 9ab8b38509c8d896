package repository

import (
	"context"
	"time"

	"expertbook/internal/model"
)

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// ListByUser and ListByExpert order by date_time ascending.
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	// Reschedule moves the booking and resets it to status.
	Reschedule(ctx context.Context, id string, at time.Time, status model.BookingStatus) (*model.Booking, error)
	// UpdateStatus changes the status only while it still equals from, so two
	// concurrent decisions cannot both succeed. ErrNotFound otherwise.
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error)
	UpdateUserSnapshot(ctx context.Context, id, displayName, email string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
