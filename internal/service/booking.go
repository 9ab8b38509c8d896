package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expertbook/internal/model"
	"expertbook/internal/realtime"
	"expertbook/internal/repository"
)

type BookingService interface {
	// Create books expertID for userID at a future slot within the booking
	// window. New bookings start pending.
	Create(ctx context.Context, userID, expertID string, at time.Time) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error)
	// Reschedule moves the caller's booking and puts it back to pending.
	Reschedule(ctx context.Context, userID, bookingID string, at time.Time) (*model.Booking, error)
	// Cancel deletes the caller's booking.
	Cancel(ctx context.Context, userID, bookingID string) error
	// Accept and Decline decide a pending booking on behalf of the expert
	// profile owned by expertUserID.
	Accept(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error)
	Decline(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error)
	Count(ctx context.Context) (int, error)
	// BackfillUsers fills missing user snapshots from the users table.
	BackfillUsers(ctx context.Context) (*model.BackfillResult, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	experts  repository.ExpertRepository
	users    repository.UserRepository
	pub      realtime.Publisher
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	experts repository.ExpertRepository,
	users repository.UserRepository,
	pub realtime.Publisher,
	log *zap.Logger,
) BookingService {
	return &bookingService{bookings: bookings, experts: experts, users: users, pub: pub, log: log, now: time.Now}
}

// publish notifies the booking's user and the account behind its expert.
func (s *bookingService) publish(ctx context.Context, typ string, b *model.Booking) {
	e, err := s.experts.FindByID(ctx, b.ExpertID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("resolve booking expert for event", zap.String("booking_id", b.ID), zap.Error(err))
	}
	s.notify(typ, b, e)
}

// notify sends the event to b's user and, when e is linked to an account,
// to the expert. e may be nil.
func (s *bookingService) notify(typ string, b *model.Booking, e *model.Expert) {
	recipients := []string{b.UserID}
	if e != nil && e.UserID != nil {
		recipients = append(recipients, *e.UserID)
	}
	s.pub.Publish(realtime.Event{Type: typ, Booking: *b}, recipients...)
}

func (s *bookingService) Create(ctx context.Context, userID, expertID string, at time.Time) (*model.Booking, error) {
	if err := requireFields("user_id", userID, "expert_id", expertID); err != nil {
		return nil, err
	}
	now := s.now()
	if err := checkSlot(at, now); err != nil {
		return nil, err
	}
	if _, err := s.experts.FindByID(ctx, expertID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("expert does not exist")
		}
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	b, err := s.bookings.Create(ctx, &model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		ExpertID:        expertID,
		DateTime:        at.UTC(),
		Status:          model.BookingPending,
		UserDisplayName: u.DisplayName,
		UserEmail:       u.Email,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.publish(ctx, realtime.BookingCreated, b)
	return b, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *bookingService) ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error) {
	return s.bookings.ListByExpert(ctx, expertID)
}

func (s *bookingService) owned(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *bookingService) Reschedule(ctx context.Context, userID, bookingID string, at time.Time) (*model.Booking, error) {
	if err := checkSlot(at, s.now()); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, userID, bookingID); err != nil {
		return nil, err
	}
	b, err := s.bookings.Reschedule(ctx, bookingID, at.UTC(), model.BookingPending)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	s.publish(ctx, realtime.BookingUpdated, b)
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	b, err := s.owned(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return notFound(err, "booking")
	}
	s.publish(ctx, realtime.BookingDeleted, b)
	return nil
}

func (s *bookingService) decide(ctx context.Context, expertUserID, bookingID string, next model.BookingStatus) (*model.Booking, error) {
	e, err := s.experts.FindByUserID(ctx, expertUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if b.ExpertID != e.ID {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, next)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, b.Status, next)
	if errors.Is(err, repository.ErrNotFound) {
		// decided concurrently
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	s.notify(realtime.BookingUpdated, updated, e)
	return updated, nil
}

func (s *bookingService) Accept(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error) {
	return s.decide(ctx, expertUserID, bookingID, model.BookingConfirmed)
}

func (s *bookingService) Decline(ctx context.Context, expertUserID, bookingID string) (*model.Booking, error) {
	return s.decide(ctx, expertUserID, bookingID, model.BookingDeclined)
}

func (s *bookingService) Count(ctx context.Context) (int, error) {
	return s.bookings.Count(ctx)
}

func (s *bookingService) BackfillUsers(ctx context.Context) (*model.BackfillResult, error) {
	items, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	res := &model.BackfillResult{Total: len(items)}

	var missing []string
	for i := range items {
		if items[i].NeedsUserSnapshot() {
			missing = append(missing, items[i].UserID)
		}
	}
	users, err := s.users.FindByIDs(ctx, dedupeIDs(missing))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for i := range items {
		b := &items[i]
		if !b.NeedsUserSnapshot() {
			res.Skipped++
			continue
		}
		u, ok := byID[b.UserID]
		if !ok {
			res.Skipped++
			continue
		}
		name, email := b.UserDisplayName, b.UserEmail
		if name == "" {
			name = u.DisplayName
		}
		if email == "" {
			email = u.Email
		}
		if err := s.bookings.UpdateUserSnapshot(ctx, b.ID, name, email); err != nil {
			s.log.Warn("backfill booking", zap.String("booking_id", b.ID), zap.Error(err))
			res.Errors++
			continue
		}
		res.Updated++
	}

	s.log.Info("booking user backfill done",
		zap.Int("total", res.Total),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", res.Errors),
	)
	return res, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
