package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertbook/internal/model"
	"expertbook/internal/repository"
	repoMocks "expertbook/internal/repository/mocks"
)

type dashDeps struct {
	categories *repoMocks.MockCategoryRepository
	experts    *repoMocks.MockExpertRepository
	users      *repoMocks.MockUserRepository
	bookings   *repoMocks.MockBookingRepository
}

func newDashboards() (DashboardService, dashDeps) {
	d := dashDeps{
		categories: new(repoMocks.MockCategoryRepository),
		experts:    new(repoMocks.MockExpertRepository),
		users:      new(repoMocks.MockUserRepository),
		bookings:   new(repoMocks.MockBookingRepository),
	}
	return NewDashboardService(d.categories, d.experts, d.users, d.bookings), d
}

func TestDashboardService_Admin(t *testing.T) {
	ctx := context.Background()
	svc, d := newDashboards()
	d.categories.On("Count", ctx).Return(3, nil)
	d.experts.On("Count", ctx).Return(7, nil)
	d.users.On("Count", ctx).Return(20, nil)
	d.bookings.On("Count", ctx).Return(42, nil)

	st, err := svc.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.AdminStats{Categories: 3, Experts: 7, Users: 20, Bookings: 42}, *st)
}

func TestDashboardService_Expert(t *testing.T) {
	ctx := context.Background()
	svc, d := newDashboards()

	d.experts.On("FindByUserID", ctx, "eu-1").Return(&model.Expert{ID: "e-1", Name: "Marie"}, nil)
	d.bookings.On("ListByExpert", ctx, "e-1").Return([]model.Booking{
		{ID: "b-1", UserID: "u-1", Status: model.BookingConfirmed},
		{ID: "b-2", UserID: "u-2", Status: model.BookingPending},
		{ID: "b-3", UserID: "gone", Status: model.BookingPending, UserDisplayName: "old name", UserEmail: "old@example.com"},
		{ID: "b-4", UserID: "gone2", Status: model.BookingDeclined},
		{ID: "b-5", UserID: "u-1", Status: model.BookingPending},
	}, nil)
	d.users.On("FindByIDs", ctx, []string{"u-1", "u-2", "gone", "gone2"}).Return([]model.User{
		{ID: "u-1", DisplayName: "ada", Email: "ada@example.com"},
		{ID: "u-2", Email: "x@example.com"},
	}, nil)

	dash, err := svc.Expert(ctx, "eu-1")
	require.NoError(t, err)
	assert.Equal(t, "Marie", dash.Expert.Name)
	assert.Equal(t, 1, dash.ConfirmedCount)
	assert.Equal(t, 3, dash.PendingCount)

	require.Len(t, dash.Bookings, 5)
	assert.Equal(t, "ada (ada@example.com)", dash.Bookings[0].ClientLabel)
	assert.Equal(t, "A", dash.Bookings[0].ClientInitial)
	assert.Equal(t, "Unnamed (x@example.com)", dash.Bookings[1].ClientLabel)
	assert.Equal(t, "old name (old@example.com)", dash.Bookings[2].ClientLabel)
	assert.Equal(t, "Unknown user", dash.Bookings[3].ClientLabel)
	d.users.AssertNumberOfCalls(t, "FindByIDs", 1)
}

func TestDashboardService_ExpertWithoutProfile(t *testing.T) {
	ctx := context.Background()
	svc, d := newDashboards()
	d.experts.On("FindByUserID", ctx, "u-1").Return(nil, repository.ErrNotFound)

	_, err := svc.Expert(ctx, "u-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardService_User(t *testing.T) {
	ctx := context.Background()
	svc, d := newDashboards()

	d.bookings.On("ListByUser", ctx, "u-1").Return([]model.Booking{
		{ID: "b-1", ExpertID: "e-1"},
		{ID: "b-2", ExpertID: "e-2"},
		{ID: "b-3", ExpertID: "e-gone"},
	}, nil)
	d.experts.On("FindByIDs", ctx, []string{"e-1", "e-2", "e-gone"}).Return([]model.Expert{
		{ID: "e-1", Name: "Marie", CategoryID: "c-1"},
		{ID: "e-2", Name: "Paul", CategoryID: "c-gone"},
	}, nil)
	d.categories.On("List", ctx).Return([]model.Category{{ID: "c-1", Name: "Wellness"}}, nil)

	dash, err := svc.User(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, dash.Bookings, 3)
	assert.Equal(t, "Marie", dash.Bookings[0].ExpertName)
	assert.Equal(t, "Wellness", dash.Bookings[0].CategoryName)
	assert.Equal(t, "Paul", dash.Bookings[1].ExpertName)
	assert.Equal(t, UnknownCategory, dash.Bookings[1].CategoryName)
	assert.Equal(t, UnknownExpert, dash.Bookings[2].ExpertName)
	assert.Equal(t, UnknownCategory, dash.Bookings[2].CategoryName)
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "É", initial("élodie"))
	assert.Equal(t, "?", initial("   "))
}
