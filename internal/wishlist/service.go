package wishlist

import (
	"context"
	"errors"

	"bazaar-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("Product not found")
	ErrAlreadyExists   = errors.New("Product already in wishlist")
)

// Service manages the (user, product) wishlist relation.
type Service struct {
	DB *gorm.DB
}

// Add creates a wishlist entry. Duplicate adds are rejected; the composite
// unique index backs this check against concurrent adds.
func (s *Service) Add(ctx context.Context, email string, productID uuid.UUID) error {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	var existing models.WishlistItem
	err := s.DB.WithContext(ctx).
		Where("useremail = ? AND product_id = ?", email, productID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := &models.WishlistItem{UserEmail: email, ProductID: productID}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// List returns all of a user's wishlist entries with their products.
func (s *Service) List(ctx context.Context, email string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := s.DB.WithContext(ctx).
		Preload("Product").
		Where("useremail = ?", email).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Contains reports whether a product is on the user's wishlist.
func (s *Service) Contains(ctx context.Context, email string, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("useremail = ? AND product_id = ?", email, productID).
		Count(&count).Error
	return count > 0, err
}

// Remove deletes the entry. Removing an absent entry is a no-op success.
func (s *Service) Remove(ctx context.Context, email string, productID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("useremail = ? AND product_id = ?", email, productID).
		Delete(&models.WishlistItem{}).Error
}
