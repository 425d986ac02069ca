package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem is one (user, product) wishlist pair. The composite unique
// index rejects duplicate adds at the store layer, including races.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	UserEmail string    `gorm:"column:useremail;uniqueIndex:idx_wishlist_user_product" json:"useremail"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;uniqueIndex:idx_wishlist_user_product" json:"productId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`

	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "Wishlists"
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
