package profile

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"bazaar-backend/internal/auth"
	"bazaar-backend/internal/emails"
	"bazaar-backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrInvalidOTP   = errors.New("Invalid verification token")
	ErrUserNotFound = errors.New("User not found")
)

const (
	otpTTL    = 15 * time.Minute
	otpPrefix = "verify:"
)

// Service handles email verification and profile maintenance. OTPs live in
// redis under TTL keys.
type Service struct {
	DB     *gorm.DB
	Rdb    *redis.Client
	Mailer emails.Sender
	Tokens *auth.TokenIssuer
}

func otpKey(email string) string {
	return otpPrefix + strings.ToLower(email)
}

// SendVerificationEmail generates a 4-digit OTP, stores it for 15 minutes
// and mails it. A pending OTP for the same email is replaced.
func (s *Service) SendVerificationEmail(ctx context.Context, email string) error {
	otp := fmt.Sprintf("%d", 1000+rand.IntN(9000))
	if err := s.Rdb.Set(ctx, otpKey(email), otp, otpTTL).Err(); err != nil {
		return err
	}
	if s.Mailer == nil {
		return nil
	}
	return s.Mailer.SendOTP(ctx, email, otp)
}

// VerifyEmail checks the OTP and moves the account to the verified email,
// returning the updated user and a fresh session credential.
func (s *Service) VerifyEmail(ctx context.Context, userID uuid.UUID, email, pin string) (*models.User, string, error) {
	stored, err := s.Rdb.Get(ctx, otpKey(email)).Result()
	if err != nil || stored != pin {
		return nil, "", ErrInvalidOTP
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	user.Email = email
	user.IsEmailVerified = true
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.Tokens.Issue(user.ID.String(), user.Email, "")
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// VerificationStatus reports whether the account behind the email is
// verified.
func (s *Service) VerificationStatus(ctx context.Context, email string) (bool, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return false, err
	}
	return user.IsEmailVerified, nil
}

// UpdateProfile replaces name, picture and phone number.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, picture, phone string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Name = name
	user.Picture = picture
	user.PhoneNumber = phone
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search resolves a public profile snapshot by email.
func (s *Service) Search(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
