package services

import (
	"context"

	"github.com/axellelanca/shortlinks/internal/auth"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/repository"
)

// AdminService runs the unscoped queries. It shares no code path with
// URLService: every method demands an AdminGrant minted by auth.RequireAdmin.
type AdminService struct {
	urlRepo  repository.URLRepository
	userRepo repository.UserRepository
}

// NewAdminService creates and returns a new instance of AdminService.
func NewAdminService(urlRepo repository.URLRepository, userRepo repository.UserRepository) *AdminService {
	return &AdminService{urlRepo: urlRepo, userRepo: userRepo}
}

func (s *AdminService) ListUsers(ctx context.Context, grant auth.AdminGrant) ([]models.User, error) {
	if !grant.Valid() {
		return nil, customerrors.ErrForbidden
	}
	return s.userRepo.ListAll(ctx)
}

// DeleteUser removes the user and every short URL it owns.
func (s *AdminService) DeleteUser(ctx context.Context, grant auth.AdminGrant, userID uint) error {
	if !grant.Valid() {
		return customerrors.ErrForbidden
	}
	return s.userRepo.DeleteWithURLs(ctx, userID)
}

func (s *AdminService) ListURLs(ctx context.Context, grant auth.AdminGrant) ([]models.ShortURL, error) {
	if !grant.Valid() {
		return nil, customerrors.ErrForbidden
	}
	return s.urlRepo.ListAll(ctx)
}

func (s *AdminService) DeleteURL(ctx context.Context, grant auth.AdminGrant, shortCode string) error {
	if !grant.Valid() {
		return customerrors.ErrForbidden
	}
	return s.urlRepo.DeleteByShortCode(ctx, shortCode)
}
