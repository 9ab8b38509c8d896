package postgres

import (
	"context"
	"database/sql"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

const categoryColumns = `id, name, description, created_at`

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

func scanCategory(r rowScanner) (*model.Category, error) {
	var c model.Category
	if err := r.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryPostgres) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	const q = `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns
	out, err := scanCategory(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Description, c.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CategoryPostgres) List(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *CategoryPostgres) Update(ctx context.Context, c *model.Category) error {
	const q = `UPDATE categories SET name = $1, description = $2 WHERE id = $3`
	return expectAffected(r.db.ExecContext(ctx, q, c.Name, c.Description, c.ID))
}

func (r *CategoryPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM categories WHERE id = $1`
	return expectAffected(r.db.ExecContext(ctx, q, id))
}

func (r *CategoryPostgres) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, `SELECT COUNT(*) FROM categories`)
}
