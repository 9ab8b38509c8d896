package postgres

import (
	"context"
	"database/sql"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

const userColumns = `id, email, password_hash, display_name, role, created_at`

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(r rowScanner) (*model.User, error) {
	var u model.User
	if err := r.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, display_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.Role, u.CreatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// FindByEmail matches emails case-insensitively.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + inPlaceholders(1, len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, q, stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

// List returns users using LIMIT/OFFSET pagination and a total count.
func (r *UserPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	total, err := countRows(ctx, r.db, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

func (r *UserPostgres) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users SET display_name = $1, email = $2, role = $3 WHERE id = $4`
	return expectAffected(r.db.ExecContext(ctx, q, u.DisplayName, u.Email, u.Role, u.ID))
}

func (r *UserPostgres) UpdateRole(ctx context.Context, id string, role model.Role) error {
	const q = `UPDATE users SET role = $1 WHERE id = $2`
	return expectAffected(r.db.ExecContext(ctx, q, role, id))
}

func (r *UserPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM users WHERE id = $1`
	return expectAffected(r.db.ExecContext(ctx, q, id))
}

func (r *UserPostgres) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, `SELECT COUNT(*) FROM users`)
}
