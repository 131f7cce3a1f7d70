package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// URLRepository est une interface qui définit les méthodes d'accès aux données.
// Owner-scoped methods take the owner id explicitly; the unscoped ones
// (FindByShortCode, IncrementAccessCount, ListAll, DeleteByShortCode) are only
// reached through the public resolve path or the admin service.
type URLRepository interface {
	Create(ctx context.Context, shortURL *models.ShortURL) error
	FindByShortCode(ctx context.Context, shortCode string) (*models.ShortURL, error)
	FindByOwnerAndURL(ctx context.Context, ownerID uint, longURL string) (*models.ShortURL, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.ShortURL, error)
	UpdateURLForOwner(ctx context.Context, ownerID uint, shortCode, longURL string) (*models.ShortURL, error)
	DeleteForOwner(ctx context.Context, ownerID uint, shortCode string) error
	IncrementAccessCount(ctx context.Context, shortCode string) (*models.ShortURL, error)
	ListAll(ctx context.Context) ([]models.ShortURL, error)
	DeleteByShortCode(ctx context.Context, shortCode string) error
}

// GormURLRepository est l'implémentation de URLRepository utilisant GORM.
type GormURLRepository struct {
	db *gorm.DB
}

// NewURLRepository crée et retourne une nouvelle instance de GormURLRepository.
func NewURLRepository(db *gorm.DB) *GormURLRepository {
	return &GormURLRepository{db: db}
}

// Create inserts a new short URL. A clash on the short_code unique index is
// reported as ErrShortCodeExists so the caller can retry with another salt.
// A missing owner is reported as ErrUserNotFound.
func (r *GormURLRepository) Create(ctx context.Context, shortURL *models.ShortURL) error {
	if err := r.db.WithContext(ctx).Create(shortURL).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("short code %q: %w", shortURL.ShortCode, customerrors.ErrShortCodeExists)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("owner %d: %w", shortURL.OwnerID, customerrors.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create short url: %w", err)
	}
	return nil
}

// FindByShortCode looks a record up across all owners without touching its counter.
func (r *GormURLRepository) FindByShortCode(ctx context.Context, shortCode string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&shortURL).Error
	if err != nil {
		return nil, notFound(err, customerrors.ErrShortCodeNotFound)
	}
	return &shortURL, nil
}

// FindByOwnerAndURL returns the owner's existing record for longURL, if any.
func (r *GormURLRepository) FindByOwnerAndURL(ctx context.Context, ownerID uint, longURL string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND url = ?", ownerID, longURL).
		Order("id").
		First(&shortURL).Error
	if err != nil {
		return nil, notFound(err, customerrors.ErrShortCodeNotFound)
	}
	return &shortURL, nil
}

// ListByOwner returns every record owned by ownerID in insertion order.
func (r *GormURLRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.ShortURL, error) {
	shortURLs := []models.ShortURL{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&shortURLs).Error; err != nil {
		return nil, fmt.Errorf("failed to list short urls for owner %d: %w", ownerID, err)
	}
	return shortURLs, nil
}

// UpdateURLForOwner replaces the target URL of an owned record and bumps updated_at.
func (r *GormURLRepository) UpdateURLForOwner(ctx context.Context, ownerID uint, shortCode, longURL string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ShortURL{}).
			Where("owner_id = ? AND short_code = ?", ownerID, shortCode).
			Updates(map[string]any{"url": longURL, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return fmt.Errorf("failed to update short url %q: %w", shortCode, res.Error)
		}
		if res.RowsAffected == 0 {
			return customerrors.ErrShortCodeNotFound
		}
		return tx.Where("short_code = ?", shortCode).First(&shortURL).Error
	})
	if err != nil {
		return nil, err
	}
	return &shortURL, nil
}

// DeleteForOwner removes an owned record.
func (r *GormURLRepository) DeleteForOwner(ctx context.Context, ownerID uint, shortCode string) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND short_code = ?", ownerID, shortCode).
		Delete(&models.ShortURL{})
	return deleted(res, shortCode)
}

// IncrementAccessCount bumps the counter with a single UPDATE so concurrent
// resolutions never lose an increment, then reads the row back.
func (r *GormURLRepository) IncrementAccessCount(ctx context.Context, shortCode string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ShortURL{}).
			Where("short_code = ?", shortCode).
			UpdateColumn("access_count", gorm.Expr("access_count + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to increment access count for %q: %w", shortCode, res.Error)
		}
		if res.RowsAffected == 0 {
			return customerrors.ErrShortCodeNotFound
		}
		return tx.Where("short_code = ?", shortCode).First(&shortURL).Error
	})
	if err != nil {
		return nil, err
	}
	return &shortURL, nil
}

// ListAll récupère tous les liens de la base de données.
func (r *GormURLRepository) ListAll(ctx context.Context) ([]models.ShortURL, error) {
	shortURLs := []models.ShortURL{}
	if err := r.db.WithContext(ctx).Order("id").Find(&shortURLs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all short urls: %w", err)
	}
	return shortURLs, nil
}

// DeleteByShortCode removes a record regardless of its owner.
func (r *GormURLRepository) DeleteByShortCode(ctx context.Context, shortCode string) error {
	res := r.db.WithContext(ctx).Where("short_code = ?", shortCode).Delete(&models.ShortURL{})
	return deleted(res, shortCode)
}

func deleted(res *gorm.DB, shortCode string) error {
	if res.Error != nil {
		return fmt.Errorf("failed to delete short url %q: %w", shortCode, res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrShortCodeNotFound
	}
	return nil
}

// notFound maps gorm.ErrRecordNotFound to the given domain error and wraps anything else.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return fmt.Errorf("database error: %w", err)
}
