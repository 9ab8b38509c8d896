package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

// UnknownExpert labels bookings whose expert no longer exists.
const UnknownExpert = "Unknown expert"

type DashboardService interface {
	Admin(ctx context.Context) (*model.AdminStats, error)
	// Expert returns the dashboard of the expert profile owned by uid.
	Expert(ctx context.Context, uid string) (*model.ExpertDashboard, error)
	User(ctx context.Context, uid string) (*model.UserDashboard, error)
}

type dashboardService struct {
	categories repository.CategoryRepository
	experts    repository.ExpertRepository
	users      repository.UserRepository
	bookings   repository.BookingRepository
}

func NewDashboardService(
	categories repository.CategoryRepository,
	experts repository.ExpertRepository,
	users repository.UserRepository,
	bookings repository.BookingRepository,
) DashboardService {
	return &dashboardService{categories: categories, experts: experts, users: users, bookings: bookings}
}

func (s *dashboardService) Admin(ctx context.Context) (*model.AdminStats, error) {
	var (
		st  model.AdminStats
		err error
	)
	if st.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if st.Experts, err = s.experts.Count(ctx); err != nil {
		return nil, err
	}
	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if st.Bookings, err = s.bookings.Count(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}

// clientLabel prefers the live account, then the booking snapshot.
func clientLabel(b *model.Booking, u *model.User) string {
	if u == nil && (b.UserDisplayName != "" || b.UserEmail != "") {
		u = &model.User{DisplayName: b.UserDisplayName, Email: b.UserEmail}
	}
	return u.Label()
}

func initial(label string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(label))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

func (s *dashboardService) Expert(ctx context.Context, uid string) (*model.ExpertDashboard, error) {
	e, err := s.experts.FindByUserID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "expert profile")
	}
	items, err := s.bookings.ListByExpert(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].UserID)
	}
	users, err := s.users.FindByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	d := &model.ExpertDashboard{Expert: *e, Bookings: make([]model.ExpertBooking, 0, len(items))}
	for i := range items {
		b := items[i]
		label := clientLabel(&b, byID[b.UserID])
		d.Bookings = append(d.Bookings, model.ExpertBooking{Booking: b, ClientLabel: label, ClientInitial: initial(label)})
		switch b.Status {
		case model.BookingConfirmed:
			d.ConfirmedCount++
		case model.BookingPending:
			d.PendingCount++
		}
	}
	return d, nil
}

func (s *dashboardService) User(ctx context.Context, uid string) (*model.UserDashboard, error) {
	items, err := s.bookings.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ExpertID)
	}
	experts, err := s.experts.FindByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Expert, len(experts))
	for i := range experts {
		byID[experts[i].ID] = &experts[i]
	}

	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	catNames := make(map[string]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	d := &model.UserDashboard{Bookings: make([]model.UserBooking, 0, len(items))}
	for _, b := range items {
		ub := model.UserBooking{Booking: b, ExpertName: UnknownExpert, CategoryName: UnknownCategory}
		if e, ok := byID[b.ExpertID]; ok {
			ub.ExpertName = e.Name
			if n, ok := catNames[e.CategoryID]; ok {
				ub.CategoryName = n
			}
		}
		d.Bookings = append(d.Bookings, ub)
	}
	return d, nil
}
