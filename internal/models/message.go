package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one chat message about a listing. Owned jointly by sender and
// recipient for query purposes; immutable apart from the read flag.
type Message struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	From      string    `gorm:"column:from_email;index" json:"from"`
	To        string    `gorm:"column:to_email;index" json:"to"`
	Body      string    `gorm:"column:message" json:"message"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index" json:"product_id"`
	IsRead    bool      `gorm:"column:is_read;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Message) TableName() string {
	return "Messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
