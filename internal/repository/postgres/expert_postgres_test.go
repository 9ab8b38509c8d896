package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertbook/internal/model"
	"expertbook/internal/repository"
)

var expertCols = []string{"id", "user_id", "name", "email", "bio", "category_id", "avatar_path", "created_at"}

func TestExpertPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExpertPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("linked to an account", func(t *testing.T) {
		uid := "u-1"
		e := &model.Expert{ID: "e-1", UserID: &uid, Name: "Marie", Email: "m@example.com", CategoryID: "c-1", CreatedAt: now}

		mock.ExpectQuery("INSERT INTO experts").
			WithArgs(e.ID, sql.NullString{String: uid, Valid: true}, e.Name, e.Email, e.Bio, e.CategoryID, "", e.CreatedAt).
			WillReturnRows(sqlmock.NewRows(expertCols).AddRow("e-1", uid, "Marie", "m@example.com", "", "c-1", "", now))

		out, err := repo.Create(ctx, e)
		assert.NoError(t, err)
		require.NotNil(t, out.UserID)
		assert.Equal(t, "u-1", *out.UserID)
	})

	t.Run("admin created without account", func(t *testing.T) {
		e := &model.Expert{ID: "e-2", Name: "Pierre", Email: "p@example.com", CategoryID: "c-1", CreatedAt: now}

		mock.ExpectQuery("INSERT INTO experts").
			WithArgs(e.ID, sql.NullString{}, e.Name, e.Email, e.Bio, e.CategoryID, "", e.CreatedAt).
			WillReturnRows(sqlmock.NewRows(expertCols).AddRow("e-2", nil, "Pierre", "p@example.com", "", "c-1", "", now))

		out, err := repo.Create(ctx, e)
		assert.NoError(t, err)
		assert.Nil(t, out.UserID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpertPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExpertPostgres(db)
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM experts ORDER BY name").
			WillReturnRows(sqlmock.NewRows(expertCols).
				AddRow("e-1", nil, "Alice", "a@example.com", "", "c-1", "", time.Now()).
				AddRow("e-2", "u-2", "Bob", "b@example.com", "", "c-2", "", time.Now()))

		items, err := repo.List(ctx, repository.ExpertFilter{})
		assert.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("by category", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM experts WHERE category_id = \\$1 ORDER BY name").
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows(expertCols).
				AddRow("e-1", nil, "Alice", "a@example.com", "", "c-1", "", time.Now()))

		items, err := repo.List(ctx, repository.ExpertFilter{CategoryID: "c-1"})
		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "c-1", items[0].CategoryID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpertPostgres_FindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExpertPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM experts WHERE user_id = \\$1").
		WithArgs("u-9").
		WillReturnRows(sqlmock.NewRows(expertCols))

	e, err := repo.FindByUserID(context.Background(), "u-9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, e)
}

func TestExpertPostgres_UpdateAvatar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExpertPostgres(db)

	mock.ExpectExec("UPDATE experts SET avatar_path = \\$1 WHERE id = \\$2").
		WithArgs("experts/x.png", "e-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateAvatar(context.Background(), "e-1", "experts/x.png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpertPostgres_FindByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExpertPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM experts WHERE id IN \\(\\$1\\)").
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(expertCols).
			AddRow("e-1", nil, "Alice", "a@example.com", "", "c-1", "", time.Now()))

	items, err := repo.FindByIDs(context.Background(), []string{"e-1"})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
