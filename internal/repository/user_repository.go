package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	ListAll(ctx context.Context) ([]models.User, error)
	DeleteWithURLs(ctx context.Context, id uint) error
}

// GormUserRepository implements UserRepository with GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository crée et retourne une nouvelle instance de GormUserRepository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user. Username or email clashes yield ErrUserExists.
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", user.Username, customerrors.ErrUserExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, customerrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, customerrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("hashed_password", hashedPassword)
	if res.Error != nil {
		return fmt.Errorf("failed to update password for user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all users: %w", err)
	}
	return users, nil
}

// DeleteWithURLs removes the user's short URLs and then the user in one
// transaction, so no orphaned rows remain even without FK enforcement.
func (r *GormUserRepository) DeleteWithURLs(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&models.ShortURL{}).Error; err != nil {
			return fmt.Errorf("failed to delete short urls of user %d: %w", id, err)
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return customerrors.ErrUserNotFound
		}
		return nil
	})
}
