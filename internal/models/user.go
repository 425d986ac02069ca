package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account record. Either Email or PhoneNumber is populated;
// phone-only accounts have an empty email, so email uniqueness is enforced
// at registration rather than by a unique index.
type User struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	Email           string    `gorm:"column:email;index" json:"email"`
	Name            string    `gorm:"column:name" json:"name"`
	Password        string    `gorm:"column:password" json:"-"`
	Picture         string    `gorm:"column:picture" json:"picture"`
	PhoneNumber     string    `gorm:"column:phonenumber;index" json:"phonenumber"`
	IsEmailVerified bool      `gorm:"column:is_email_verified;default:false" json:"isEmailVerified"`
	IsPhoneVerified bool      `gorm:"column:is_phone_verified;default:false" json:"isPhoneVerified"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
