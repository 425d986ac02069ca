package auth

import (
	"context"
	"errors"
	"strings"

	"bazaar-backend/internal/identity"
	"bazaar-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult is the login/exchange response payload.
type AuthResult struct {
	Token   string
	Email   string
	Name    string
	Picture string
	Phone   string
	Created bool // account was created during the exchange
}

type Service struct {
	DB     *gorm.DB
	Tokens *TokenIssuer
}

// Register creates a password account. Duplicate emails are rejected.
func (s *Service) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, Name: name, Password: string(hashed)}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password and issues a session credential.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	token, err := s.Tokens.Issue(user.ID.String(), user.Email, "")
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:   token,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
		Phone:   user.PhoneNumber,
	}, nil
}

// GoogleExchange turns verified provider claims into a local account and
// session credential, creating the account on first sight.
func (s *Service) GoogleExchange(ctx context.Context, claims *identity.Claims) (*AuthResult, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", claims.Email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		name := claims.Name
		if name == "" {
			name = strings.SplitN(claims.Email, "@", 2)[0]
		}
		user = models.User{
			Email:           claims.Email,
			Name:            name,
			IsEmailVerified: true,
			Picture:         claims.Picture,
		}
		if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		token, err := s.Tokens.Issue(user.ID.String(), user.Email, "")
		if err != nil {
			return nil, err
		}
		return &AuthResult{
			Token:   token,
			Email:   user.Email,
			Name:    user.Name,
			Picture: user.Picture,
			Phone:   user.PhoneNumber,
			Created: true,
		}, nil
	}

	token, err := s.Tokens.Issue(user.ID.String(), user.Email, "")
	if err != nil {
		return nil, err
	}
	picture := user.Picture
	if picture == "" {
		picture = claims.Picture
	}
	return &AuthResult{
		Token:   token,
		Email:   user.Email,
		Name:    user.Name,
		Picture: picture,
		Phone:   user.PhoneNumber,
	}, nil
}

// PhoneExchange is GoogleExchange for phone-verified tokens, keyed on the
// phone number.
func (s *Service) PhoneExchange(ctx context.Context, phoneNumber string) (*AuthResult, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("phonenumber = ?", phoneNumber).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = models.User{
			PhoneNumber:     phoneNumber,
			Name:            phoneNumber, // phone is the display name until edited
			IsPhoneVerified: true,
		}
		if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		token, err := s.Tokens.Issue(user.ID.String(), "", user.PhoneNumber)
		if err != nil {
			return nil, err
		}
		return &AuthResult{
			Token:   token,
			Name:    phoneNumber,
			Phone:   phoneNumber,
			Created: true,
		}, nil
	}

	token, err := s.Tokens.Issue(user.ID.String(), "", user.PhoneNumber)
	if err != nil {
		return nil, err
	}
	name := user.Name
	if name == "" {
		name = phoneNumber
	}
	return &AuthResult{
		Token:   token,
		Email:   user.Email,
		Name:    name,
		Picture: user.Picture,
		Phone:   phoneNumber,
	}, nil
}
