package postgres

import (
	"context"
	"database/sql"
	"time"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

const bookingColumns = `id, user_id, expert_id, date_time, status, user_display_name, user_email, created_at, updated_at`

// BookingPostgres is a PostgreSQL implementation of repository.BookingRepository.
type BookingPostgres struct {
	db *sql.DB
}

func NewBookingPostgres(db *sql.DB) *BookingPostgres {
	return &BookingPostgres{db: db}
}

var _ repository.BookingRepository = (*BookingPostgres)(nil)

func scanBooking(r rowScanner) (*model.Booking, error) {
	var b model.Booking
	if err := r.Scan(
		&b.ID,
		&b.UserID,
		&b.ExpertID,
		&b.DateTime,
		&b.Status,
		&b.UserDisplayName,
		&b.UserEmail,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingPostgres) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BookingPostgres) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	const q = `
		INSERT INTO bookings (id, user_id, expert_id, date_time, status, user_display_name, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns
	out, err := scanBooking(r.db.QueryRowContext(ctx, q,
		b.ID,
		b.UserID,
		b.ExpertID,
		b.DateTime,
		b.Status,
		b.UserDisplayName,
		b.UserEmail,
		b.CreatedAt,
		b.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *BookingPostgres) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *BookingPostgres) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY date_time, id`
	return r.queryBookings(ctx, q, userID)
}

func (r *BookingPostgres) ListByExpert(ctx context.Context, expertID string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE expert_id = $1 ORDER BY date_time, id`
	return r.queryBookings(ctx, q, expertID)
}

func (r *BookingPostgres) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at, id`
	return r.queryBookings(ctx, q)
}

func (r *BookingPostgres) Reschedule(ctx context.Context, id string, at time.Time, status model.BookingStatus) (*model.Booking, error) {
	const q = `
		UPDATE bookings SET date_time = $1, status = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + bookingColumns
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, at, status, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *BookingPostgres) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error) {
	const q = `
		UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING ` + bookingColumns
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, to, id, from))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *BookingPostgres) UpdateUserSnapshot(ctx context.Context, id, displayName, email string) error {
	const q = `UPDATE bookings SET user_display_name = $1, user_email = $2 WHERE id = $3`
	return expectAffected(r.db.ExecContext(ctx, q, displayName, email, id))
}

func (r *BookingPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM bookings WHERE id = $1`
	return expectAffected(r.db.ExecContext(ctx, q, id))
}

func (r *BookingPostgres) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, `SELECT COUNT(*) FROM bookings`)
}
