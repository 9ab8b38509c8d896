package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"expertbook/internal/auth"
	"expertbook/internal/model"
	"expertbook/internal/repository"
	repoMocks "expertbook/internal/repository/mocks"
)

type authDeps struct {
	users      *repoMocks.MockUserRepository
	experts    *repoMocks.MockExpertRepository
	categories *repoMocks.MockCategoryRepository
	tokens     *auth.Tokens
}

func newAuth(t *testing.T) (*authService, authDeps) {
	t.Helper()
	d := authDeps{
		users:      new(repoMocks.MockUserRepository),
		experts:    new(repoMocks.MockExpertRepository),
		categories: new(repoMocks.MockCategoryRepository),
		tokens:     auth.NewTokens("secret", time.Hour),
	}
	svc := NewAuthService(d.users, d.experts, d.categories, d.tokens, zap.NewNop()).(*authService)
	svc.now = clock
	return svc, d
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      RegisterInput
		setup   func(d authDeps)
		wantErr error
	}{
		{
			name: "happy path",
			in:   RegisterInput{Email: " Ada@Example.com ", Password: "password1", DisplayName: "Ada"},
			setup: func(d authDeps) {
				d.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "ada@example.com" && u.Role == model.RoleUser &&
						auth.CheckPassword(u.PasswordHash, "password1") && u.CreatedAt.Equal(fixedNow)
				})).Return(&model.User{ID: "u-1", Email: "ada@example.com", Role: model.RoleUser}, nil)
			},
		},
		{
			name:    "missing display name",
			in:      RegisterInput{Email: "ada@example.com", Password: "password1"},
			setup:   func(d authDeps) {},
			wantErr: ErrValidation,
		},
		{
			name:    "malformed email",
			in:      RegisterInput{Email: "not-an-email", Password: "password1", DisplayName: "Ada"},
			setup:   func(d authDeps) {},
			wantErr: ErrValidation,
		},
		{
			name:    "short password",
			in:      RegisterInput{Email: "ada@example.com", Password: "short", DisplayName: "Ada"},
			setup:   func(d authDeps) {},
			wantErr: ErrValidation,
		},
		{
			name: "email taken",
			in:   RegisterInput{Email: "ada@example.com", Password: "password1", DisplayName: "Ada"},
			setup: func(d authDeps) {
				d.users.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newAuth(t)
			tt.setup(d)

			res, err := svc.Register(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				claims, perr := d.tokens.Parse(res.Token)
				require.NoError(t, perr)
				assert.Equal(t, "u-1", claims.UserID)
				assert.Equal(t, model.RoleUser, claims.Role)
			}
			d.users.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterExpert(t *testing.T) {
	ctx := context.Background()
	in := RegisterExpertInput{Name: "Marie", Email: "marie@example.com", Password: "password1", Bio: "Yoga", CategoryID: "c-1"}

	t.Run("creates account and linked profile", func(t *testing.T) {
		svc, d := newAuth(t)
		d.categories.On("FindByID", ctx, "c-1").Return(&model.Category{ID: "c-1"}, nil)
		d.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleExpert
		})).Return(&model.User{ID: "u-7", Role: model.RoleExpert}, nil)
		d.experts.On("Create", ctx, mock.MatchedBy(func(e *model.Expert) bool {
			return e.UserID != nil && *e.UserID == "u-7" && e.CategoryID == "c-1" && e.Bio == "Yoga"
		})).Return(&model.Expert{ID: "e-7"}, nil)

		res, err := svc.RegisterExpert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "e-7", res.Expert.ID)
		d.experts.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, d := newAuth(t)
		d.categories.On("FindByID", ctx, "c-1").Return(nil, repository.ErrNotFound)

		_, err := svc.RegisterExpert(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
		d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("profile failure rolls back account", func(t *testing.T) {
		svc, d := newAuth(t)
		d.categories.On("FindByID", ctx, "c-1").Return(&model.Category{ID: "c-1"}, nil)
		d.users.On("Create", ctx, mock.Anything).Return(&model.User{ID: "u-7", Role: model.RoleExpert}, nil)
		d.experts.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))
		d.users.On("Delete", ctx, "u-7").Return(nil)

		_, err := svc.RegisterExpert(ctx, in)
		assert.EqualError(t, err, "create expert: db down")
		d.users.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("password1")
	require.NoError(t, err)

	t.Run("user", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "ada@example.com").
			Return(&model.User{ID: "u-1", PasswordHash: hash, Role: model.RoleUser}, nil)

		res, err := svc.Login(ctx, "ADA@example.com", "password1")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Nil(t, res.Expert)
	})

	t.Run("expert gets profile", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "m@example.com").
			Return(&model.User{ID: "u-2", PasswordHash: hash, Role: model.RoleExpert}, nil)
		d.experts.On("FindByUserID", ctx, "u-2").Return(&model.Expert{ID: "e-2"}, nil)

		res, err := svc.Login(ctx, "m@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, "e-2", res.Expert.ID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "ada@example.com").
			Return(&model.User{ID: "u-1", PasswordHash: hash}, nil)
		d.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

		_, err1 := svc.Login(ctx, "ada@example.com", "nope")
		_, err2 := svc.Login(ctx, "ghost@example.com", "password1")
		assert.ErrorIs(t, err1, ErrInvalidCredentials)
		assert.ErrorIs(t, err2, ErrInvalidCredentials)
	})

	t.Run("admin created account without password", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "x@example.com").Return(&model.User{ID: "u-3"}, nil)

		_, err := svc.Login(ctx, "x@example.com", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuth(t)
	d.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

	assert.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.ErrorIs(t, svc.ForgotPassword(ctx, "bad"), ErrValidation)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("no email configured", func(t *testing.T) {
		svc, d := newAuth(t)
		assert.NoError(t, svc.EnsureAdmin(ctx, "", ""))
		d.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("creates admin", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "admin@example.com").Return(nil, repository.ErrNotFound)
		d.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleAdmin
		})).Return(&model.User{ID: "a-1", Role: model.RoleAdmin}, nil)

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "changeme123"))
		d.users.AssertExpectations(t)
	})

	t.Run("promotes existing account", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{ID: "u-1", Role: model.RoleUser}, nil)
		d.users.On("UpdateRole", ctx, "u-1", model.RoleAdmin).Return(nil)

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", ""))
		d.users.AssertExpectations(t)
	})

	t.Run("already admin", func(t *testing.T) {
		svc, d := newAuth(t)
		d.users.On("FindByEmail", ctx, "admin@example.com").Return(&model.User{ID: "u-1", Role: model.RoleAdmin}, nil)

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", ""))
		d.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuth(t)
	d.users.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
