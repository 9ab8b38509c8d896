package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"expertbook/internal/auth"
	"expertbook/internal/model"
	"expertbook/internal/repository"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Make(uid string, role model.Role) (string, error)
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type RegisterExpertInput struct {
	Name       string
	Email      string
	Password   string
	Bio        string
	CategoryID string
}

// AuthResult is returned by every successful sign-in path.
type AuthResult struct {
	Token  string        `json:"token"`
	User   *model.User   `json:"user"`
	Expert *model.Expert `json:"expert,omitempty"`
}

// AuthService covers account creation and sign-in.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// RegisterExpert creates an expert account and its profile. The account is
	// removed again when the profile cannot be stored.
	RegisterExpert(ctx context.Context, in RegisterExpertInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// ForgotPassword succeeds for any well-formed email.
	ForgotPassword(ctx context.Context, email string) error
	// EnsureAdmin creates or promotes the bootstrap admin. Idempotent.
	EnsureAdmin(ctx context.Context, email, password string) error
	Me(ctx context.Context, uid string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	experts    repository.ExpertRepository
	categories repository.CategoryRepository
	tokens     TokenIssuer
	log        *zap.Logger
	now        func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	experts repository.ExpertRepository,
	categories repository.CategoryRepository,
	tokens TokenIssuer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:      users,
		experts:    experts,
		categories: categories,
		tokens:     tokens,
		log:        log,
		now:        time.Now,
	}
}

func checkPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (s *authService) createAccount(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  name,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *authService) issue(u *model.User, e *model.Expert) (*AuthResult, error) {
	tok, err := s.tokens.Make(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: tok, User: u, Expert: e}, nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := requireFields("display_name", in.DisplayName, "email", in.Email, "password", in.Password); err != nil {
		return nil, err
	}
	if err := checkEmail(in.Email); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	u, err := s.createAccount(ctx, in.Email, in.Password, in.DisplayName, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u, nil)
}

func (s *authService) RegisterExpert(ctx context.Context, in RegisterExpertInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := requireFields("name", in.Name, "email", in.Email, "password", in.Password, "category_id", in.CategoryID); err != nil {
		return nil, err
	}
	if err := checkEmail(in.Email); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("category does not exist")
		}
		return nil, err
	}

	u, err := s.createAccount(ctx, in.Email, in.Password, in.Name, model.RoleExpert)
	if err != nil {
		return nil, err
	}

	e, err := s.experts.Create(ctx, &model.Expert{
		ID:         uuid.NewString(),
		UserID:     &u.ID,
		Name:       in.Name,
		Email:      in.Email,
		Bio:        strings.TrimSpace(in.Bio),
		CategoryID: in.CategoryID,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if delErr := s.users.Delete(ctx, u.ID); delErr != nil {
			return nil, fmt.Errorf("create expert failed: %v; rollback user failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("create expert: %w", err)
	}
	return s.issue(u, e)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	var e *model.Expert
	if u.Role == model.RoleExpert {
		e, err = s.experts.FindByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return s.issue(u, e)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return err
	}
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.Info("password reset requested", zap.String("email", email))
	case errors.Is(err, repository.ErrNotFound):
		s.log.Info("password reset requested for unknown email", zap.String("email", email))
	default:
		return err
	}
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		s.log.Warn("ADMIN_EMAIL not set, skipping admin bootstrap")
		return nil
	}
	if err := checkEmail(email); err != nil {
		return err
	}

	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == model.RoleAdmin {
			return nil
		}
		if err := s.users.UpdateRole(ctx, u.ID, model.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.log.Info("promoted existing account to admin", zap.String("email", email))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	if err := checkPassword(password); err != nil {
		return err
	}
	if _, err := s.createAccount(ctx, email, password, "Administrator", model.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("created admin account", zap.String("email", email))
	return nil
}

func (s *authService) Me(ctx context.Context, uid string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}
