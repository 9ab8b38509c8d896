package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

var bookingCols = []string{"id", "user_id", "expert_id", "date_time", "status", "user_display_name", "user_email", "created_at", "updated_at"}

func bookingRow(id, status string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(id, "u-1", "e-1", at, status, "Ada", "ada@example.com", at, at)
}

func TestBookingPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingPostgres(db)
	now := time.Now().UTC()
	b := &model.Booking{
		ID:              "b-1",
		UserID:          "u-1",
		ExpertID:        "e-1",
		DateTime:        now.Add(24 * time.Hour),
		Status:          model.BookingPending,
		UserDisplayName: "Ada",
		UserEmail:       "ada@example.com",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(b.ID, b.UserID, b.ExpertID, b.DateTime, b.Status, b.UserDisplayName, b.UserEmail, b.CreatedAt, b.UpdatedAt).
		WillReturnRows(bookingRow("b-1", "pending", now))

	out, err := repo.Create(context.Background(), b)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingPending, out.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_Lists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingPostgres(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE user_id = \\$1 ORDER BY date_time").
		WithArgs("u-1").
		WillReturnRows(bookingRow("b-1", "pending", now))
	byUser, err := repo.ListByUser(ctx, "u-1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 1)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE expert_id = \\$1 ORDER BY date_time").
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(bookingCols))
	byExpert, err := repo.ListByExpert(ctx, "e-1")
	assert.NoError(t, err)
	assert.NotNil(t, byExpert)
	assert.Empty(t, byExpert)

	mock.ExpectQuery("SELECT (.+) FROM bookings ORDER BY created_at").
		WillReturnRows(bookingRow("b-1", "confirmed", now))
	all, err := repo.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingPostgres(db)
	ctx := context.Background()

	t.Run("pending to confirmed", func(t *testing.T) {
		mock.ExpectQuery("UPDATE bookings SET status = \\$1, updated_at = now\\(\\)\\s+WHERE id = \\$2 AND status = \\$3").
			WithArgs("confirmed", "b-1", "pending").
			WillReturnRows(bookingRow("b-1", "confirmed", time.Now()))

		b, err := repo.UpdateStatus(ctx, "b-1", model.BookingPending, model.BookingConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, model.BookingConfirmed, b.Status)
	})

	t.Run("already decided", func(t *testing.T) {
		mock.ExpectQuery("UPDATE bookings SET status").
			WithArgs("declined", "b-1", "pending").
			WillReturnRows(sqlmock.NewRows(bookingCols))

		b, err := repo.UpdateStatus(ctx, "b-1", model.BookingPending, model.BookingDeclined)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, b)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_Reschedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingPostgres(db)
	at := time.Now().Add(48 * time.Hour).UTC()

	mock.ExpectQuery("UPDATE bookings SET date_time = \\$1, status = \\$2").
		WithArgs(at, "pending", "b-1").
		WillReturnRows(bookingRow("b-1", "pending", at))

	b, err := repo.Reschedule(context.Background(), "b-1", at, model.BookingPending)
	assert.NoError(t, err)
	assert.True(t, b.DateTime.Equal(at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_SnapshotDeleteCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE bookings SET user_display_name = \\$1, user_email = \\$2 WHERE id = \\$3").
		WithArgs("Ada", "ada@example.com", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateUserSnapshot(ctx, "b-1", "Ada", "ada@example.com"))

	mock.ExpectExec("DELETE FROM bookings WHERE id = \\$1").
		WithArgs("b-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "b-missing"), repository.ErrNotFound)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	n, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 12, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
