package promotions

import (
	"context"
	"errors"
	"time"

	"bazaar-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("Product not found or you do not own this product")

// promotionDays is the fixed promotion window.
const promotionDays = 30

// Order is a created payment order at the gateway.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// OrderCreator abstracts payment-gateway order creation for testability.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*Order, error)
}

// Service manages listing promotion state and payment orders.
type Service struct {
	DB       *gorm.DB
	Orders   OrderCreator
	Amount   int64  // promotion price in minor units
	Currency string
}

// SweepExpired clears the promoted flag on every listing whose window has
// elapsed. Run before listing-list reads so promoted listings are never
// served stale.
func (s *Service) SweepExpired(ctx context.Context) error {
	return s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_promoted = ? AND promotion_end_date < ?", true, time.Now()).
		Update("is_promoted", false).Error
}

// CreateOrder creates a payment order for promoting an owned listing.
func (s *Service) CreateOrder(ctx context.Context, productID uuid.UUID, email string) (*Order, error) {
	if _, err := s.OwnedProduct(ctx, productID, email); err != nil {
		return nil, err
	}
	return s.Orders.CreateOrder(ctx, s.Amount, s.Currency, map[string]string{
		"productId": productID.String(),
		"userEmail": email,
	})
}

// Activate marks an owned listing promoted for the fixed window, recording
// the caller-supplied payment and order references.
func (s *Service) Activate(ctx context.Context, productID uuid.UUID, email, paymentID, orderID string) (*models.Product, error) {
	product, err := s.OwnedProduct(ctx, productID, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	end := now.AddDate(0, 0, promotionDays)
	product.IsPromoted = true
	product.PromotionStartDate = &now
	product.PromotionEndDate = &end
	if paymentID != "" {
		product.PromotionPaymentID = paymentID
	}
	if orderID != "" {
		product.PromotionOrderID = orderID
	}

	if err := s.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Status returns the promotion state of a listing.
func (s *Service) Status(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// OwnedProduct fetches a listing scoped to its owner.
func (s *Service) OwnedProduct(ctx context.Context, productID uuid.UUID, email string) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).
		Where("id = ? AND useremail = ?", productID, email).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}
