package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the validity of issued session credentials.
const tokenTTL = 24 * time.Hour

// Claims is the bearer-token payload.
type Claims struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail,omitempty"`
	UserPhone string `json:"userPhone,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs 24-hour session credentials.
type TokenIssuer struct {
	Secret string
}

// Issue signs a token for the identity. Email or phone may be empty
// depending on how the account was created.
func (t *TokenIssuer) Issue(userID, email, phone string) (string, error) {
	claims := Claims{
		UserID:    userID,
		UserEmail: email,
		UserPhone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.Secret))
}
