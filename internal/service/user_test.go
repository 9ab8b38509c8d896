package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"expertbook/internal/model"
	"expertbook/internal/repository"
	repoMocks "expertbook/internal/repository/mocks"
)

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockUserRepository)
	m.On("List", ctx, repository.PageQuery{Limit: 50, Offset: 0}).
		Return(&repository.PageResult[model.User]{Items: []model.User{{ID: "u-1"}}, Total: 1}, nil)

	res, err := NewUserService(m).List(ctx, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      UserInput
		setup   func(m *repoMocks.MockUserRepository)
		wantErr error
	}{
		{
			name: "defaults role to user",
			in:   UserInput{DisplayName: "Ada", Email: "ada@example.com"},
			setup: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser && u.PasswordHash == ""
				})).Return(&model.User{ID: "u-1", Role: model.RoleUser}, nil)
			},
		},
		{
			name:    "unknown role",
			in:      UserInput{DisplayName: "Ada", Email: "ada@example.com", Role: "root"},
			setup:   func(m *repoMocks.MockUserRepository) {},
			wantErr: ErrValidation,
		},
		{
			name: "duplicate email",
			in:   UserInput{DisplayName: "Ada", Email: "ada@example.com", Role: model.RoleAdmin},
			setup: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockUserRepository)
			tt.setup(m)
			u, err := NewUserService(m).Create(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u-1", u.ID)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockUserRepository)
	m.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Role: model.RoleUser}, nil)
	m.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.DisplayName == "Ada L." && u.Role == model.RoleExpert
	})).Return(nil)

	u, err := NewUserService(m).Update(ctx, "u-1", UserInput{DisplayName: "Ada L.", Email: "ada@example.com", Role: model.RoleExpert})
	require.NoError(t, err)
	assert.Equal(t, model.RoleExpert, u.Role)
}

func TestUserService_UpdateKeepsRoleWhenOmitted(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockUserRepository)
	m.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", DisplayName: "A", Role: model.RoleAdmin}, nil)
	m.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.DisplayName == "A2" && u.Role == model.RoleAdmin
	})).Return(nil)

	u, err := NewUserService(m).Update(ctx, "u-1", UserInput{DisplayName: "A2", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
	m.AssertExpectations(t)
}

func TestUserService_ToggleRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		from model.Role
		want model.Role
	}{
		{model.RoleAdmin, model.RoleUser},
		{model.RoleUser, model.RoleAdmin},
		{model.RoleExpert, model.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			m := new(repoMocks.MockUserRepository)
			m.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Role: tt.from}, nil)
			m.On("UpdateRole", ctx, "u-1", tt.want).Return(nil)

			u, err := NewUserService(m).ToggleRole(ctx, "u-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Role)
			m.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockUserRepository)
	m.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Role: model.RoleUser}, nil)
	m.On("UpdateRole", ctx, "u-1", model.RoleExpert).Return(nil)
	svc := NewUserService(m)

	u, err := svc.UpdateRole(ctx, "u-1", model.RoleExpert)
	require.NoError(t, err)
	assert.Equal(t, model.RoleExpert, u.Role)

	_, err = svc.UpdateRole(ctx, "u-1", "superuser")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	m := new(repoMocks.MockUserRepository)
	m.On("Delete", ctx, "u-9").Return(repository.ErrNotFound)

	assert.ErrorIs(t, NewUserService(m).Delete(ctx, "u-9"), ErrNotFound)
}
