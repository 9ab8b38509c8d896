package postgres

import (
	"context"
	"database/sql"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

const expertColumns = `id, user_id, name, email, bio, category_id, avatar_path, created_at`

// ExpertPostgres is a PostgreSQL implementation of repository.ExpertRepository.
type ExpertPostgres struct {
	db *sql.DB
}

func NewExpertPostgres(db *sql.DB) *ExpertPostgres {
	return &ExpertPostgres{db: db}
}

var _ repository.ExpertRepository = (*ExpertPostgres)(nil)

func scanExpert(r rowScanner) (*model.Expert, error) {
	var (
		e      model.Expert
		userID sql.NullString
	)
	if err := r.Scan(&e.ID, &userID, &e.Name, &e.Email, &e.Bio, &e.CategoryID, &e.AvatarPath, &e.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		e.UserID = &userID.String
	}
	return &e, nil
}

func scanExperts(rows *sql.Rows) ([]model.Expert, error) {
	defer rows.Close()
	items := make([]model.Expert, 0)
	for rows.Next() {
		e, err := scanExpert(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *ExpertPostgres) Create(ctx context.Context, e *model.Expert) (*model.Expert, error) {
	const q = `
		INSERT INTO experts (id, user_id, name, email, bio, category_id, avatar_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + expertColumns
	out, err := scanExpert(r.db.QueryRowContext(ctx, q,
		e.ID, nullableString(e.UserID), e.Name, e.Email, e.Bio, e.CategoryID, e.AvatarPath, e.CreatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ExpertPostgres) FindByID(ctx context.Context, id string) (*model.Expert, error) {
	const q = `SELECT ` + expertColumns + ` FROM experts WHERE id = $1`
	e, err := scanExpert(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (r *ExpertPostgres) FindByUserID(ctx context.Context, userID string) (*model.Expert, error) {
	const q = `SELECT ` + expertColumns + ` FROM experts WHERE user_id = $1`
	e, err := scanExpert(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return e, nil
}

func (r *ExpertPostgres) FindByIDs(ctx context.Context, ids []string) ([]model.Expert, error) {
	if len(ids) == 0 {
		return []model.Expert{}, nil
	}
	q := `SELECT ` + expertColumns + ` FROM experts WHERE id IN (` + inPlaceholders(1, len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, q, stringArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return scanExperts(rows)
}

func (r *ExpertPostgres) List(ctx context.Context, f repository.ExpertFilter) ([]model.Expert, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if f.CategoryID != "" {
		const q = `SELECT ` + expertColumns + ` FROM experts WHERE category_id = $1 ORDER BY name, id`
		rows, err = r.db.QueryContext(ctx, q, f.CategoryID)
	} else {
		const q = `SELECT ` + expertColumns + ` FROM experts ORDER BY name, id`
		rows, err = r.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	return scanExperts(rows)
}

func (r *ExpertPostgres) Update(ctx context.Context, e *model.Expert) error {
	const q = `UPDATE experts SET name = $1, email = $2, bio = $3, category_id = $4 WHERE id = $5`
	return expectAffected(r.db.ExecContext(ctx, q, e.Name, e.Email, e.Bio, e.CategoryID, e.ID))
}

func (r *ExpertPostgres) UpdateAvatar(ctx context.Context, id, path string) error {
	const q = `UPDATE experts SET avatar_path = $1 WHERE id = $2`
	return expectAffected(r.db.ExecContext(ctx, q, path, id))
}

func (r *ExpertPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM experts WHERE id = $1`
	return expectAffected(r.db.ExecContext(ctx, q, id))
}

func (r *ExpertPostgres) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, `SELECT COUNT(*) FROM experts`)
}
