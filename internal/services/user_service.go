package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/axellelanca/shortlinks/internal/auth"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/repository"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// UserService handles registration, login and self-service account operations.
type UserService struct {
	userRepo         repository.UserRepository
	tokens           *auth.TokenManager
	bcryptCost       int
	allowAdminSignup bool
}

// NewUserService creates and returns a new instance of UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, allowAdminSignup bool) *UserService {
	return &UserService{
		userRepo:         userRepo,
		tokens:           tokens,
		bcryptCost:       bcryptCost,
		allowAdminSignup: allowAdminSignup,
	}
}

// Register creates an active account. Self-registration as admin is refused
// with ErrForbidden unless allowAdminSignup is set.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", customerrors.ErrInvalidRole, err)
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, fmt.Errorf("admin self-registration is disabled: %w", customerrors.ErrForbidden)
	}
	return s.createUser(ctx, in, role)
}

// CreateAdmin creates an admin account. It is meant for operator tooling and
// ignores the allowAdminSignup switch.
func (s *UserService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createUser(ctx, in, models.RoleAdmin)
}

func (s *UserService) createUser(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          in.Email,
		Username:       in.Username,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching username and password. Unknown
// users, wrong passwords and inactive accounts all give ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, customerrors.ErrNotFound) {
			return nil, customerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.HashedPassword, password) || !user.IsActive {
		return nil, customerrors.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID, user.Username, user.Role)
}

// Profile returns the account behind the identity. A token whose user was
// deleted since issue is treated as unauthorized.
func (s *UserService) Profile(ctx context.Context, id auth.Identity) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, customerrors.ErrNotFound) {
			return nil, fmt.Errorf("user %d no longer exists: %w", id.UserID, customerrors.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
// A wrong current password yields ErrForbidden.
func (s *UserService) ChangePassword(ctx context.Context, id auth.Identity, currentPassword, newPassword string) error {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.HashedPassword, currentPassword) {
		return fmt.Errorf("current password mismatch: %w", customerrors.ErrForbidden)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}
