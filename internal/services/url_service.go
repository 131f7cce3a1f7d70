// Package services contains the business logic layer for the URL shortener application
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/axellelanca/shortlinks/internal/auth"
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/repository"
)

// DefaultMaxAttempts bounds the salted retries of Create.
const DefaultMaxAttempts = 1000

// URLService provides the owner-scoped operations on short URLs plus the
// public resolution. Every scoped call filters on Identity.UserID.
type URLService struct {
	urlRepo     repository.URLRepository
	codeLength  int
	maxAttempts int
}

// NewURLService creates and returns a new instance of URLService.
// Non-positive codeLength or maxAttempts fall back to the defaults.
func NewURLService(urlRepo repository.URLRepository, codeLength, maxAttempts int) *URLService {
	if codeLength < 1 {
		codeLength = DefaultCodeLength
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &URLService{
		urlRepo:     urlRepo,
		codeLength:  codeLength,
		maxAttempts: maxAttempts,
	}
}

// List returns the caller's short URLs.
func (s *URLService) List(ctx context.Context, id auth.Identity) ([]models.ShortURL, error) {
	if id.UserID == 0 {
		return nil, customerrors.ErrUnauthorized
	}
	return s.urlRepo.ListByOwner(ctx, id.UserID)
}

// Resolve returns the record behind shortCode and counts the access.
// It is deliberately not scoped to an owner.
func (s *URLService) Resolve(ctx context.Context, shortCode string) (*models.ShortURL, error) {
	return s.urlRepo.IncrementAccessCount(ctx, shortCode)
}

// Stats returns the record behind shortCode without counting an access.
func (s *URLService) Stats(ctx context.Context, shortCode string) (*models.ShortURL, error) {
	return s.urlRepo.FindByShortCode(ctx, shortCode)
}

// Create shortens longURL for the caller.
//
// If the caller already owns a record for longURL it is returned unchanged.
// Otherwise the code is derived with salt "", then "1", "2", ... until the
// insert does not hit the short_code unique index. The index, not a prior
// lookup, decides who wins a race, and the loser moves on to the next salt.
func (s *URLService) Create(ctx context.Context, id auth.Identity, longURL string) (*models.ShortURL, error) {
	if id.UserID == 0 {
		return nil, customerrors.ErrUnauthorized
	}
	if err := validateLongURL(longURL); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		existing, err := s.urlRepo.FindByOwnerAndURL(ctx, id.UserID, longURL)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, customerrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up existing short url: %w", err)
		}

		salt := ""
		if attempt > 0 {
			salt = strconv.Itoa(attempt)
		}

		shortURL := &models.ShortURL{
			URL:       longURL,
			ShortCode: GenerateShortCode(longURL, salt, s.codeLength),
			OwnerID:   id.UserID,
		}
		err = s.urlRepo.Create(ctx, shortURL)
		if err == nil {
			return shortURL, nil
		}
		if errors.Is(err, customerrors.ErrUserNotFound) {
			return nil, fmt.Errorf("owner %d no longer exists: %w", id.UserID, customerrors.ErrUnauthorized)
		}
		if !errors.Is(err, customerrors.ErrShortCodeExists) {
			return nil, err
		}

		log.Printf("Short code '%s' already exists, retrying generation (%d/%d)...",
			shortURL.ShortCode, attempt+1, s.maxAttempts)
	}

	return nil, fmt.Errorf("%w after %d attempts for %q", customerrors.ErrShortCodeGenerationFailed, s.maxAttempts, longURL)
}

// Update points an owned short code at newURL.
func (s *URLService) Update(ctx context.Context, id auth.Identity, shortCode, newURL string) (*models.ShortURL, error) {
	if id.UserID == 0 {
		return nil, customerrors.ErrUnauthorized
	}
	if err := validateLongURL(newURL); err != nil {
		return nil, err
	}
	return s.urlRepo.UpdateURLForOwner(ctx, id.UserID, shortCode, newURL)
}

// Delete removes an owned short code.
func (s *URLService) Delete(ctx context.Context, id auth.Identity, shortCode string) error {
	if id.UserID == 0 {
		return customerrors.ErrUnauthorized
	}
	return s.urlRepo.DeleteForOwner(ctx, id.UserID, shortCode)
}

// validateLongURL accepts absolute URLs with a scheme and a host.
func validateLongURL(longURL string) error {
	u, err := url.ParseRequestURI(longURL)
	if err != nil {
		return fmt.Errorf("%w: %v", customerrors.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q has no scheme or host", customerrors.ErrInvalidURL, longURL)
	}
	return nil
}
