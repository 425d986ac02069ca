package middleware

import (
	"fmt"
	"strings"

	"bazaar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const authLocal = "auth_user"

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	UserID    string
	UserEmail string
	UserPhone string
}

// RequireAuth resolves the Authorization bearer token and stores the identity
// in Locals. Invalid or expired tokens get 401.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c)
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return response.Unauthorized(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c)
		}

		user := AuthUser{}
		if s, ok := claims["userId"].(string); ok {
			user.UserID = s
		}
		if s, ok := claims["userEmail"].(string); ok {
			user.UserEmail = s
		}
		if s, ok := claims["userPhone"].(string); ok {
			user.UserPhone = s
		}
		if user.UserID == "" {
			return response.Unauthorized(c)
		}

		c.Locals(authLocal, user)
		return c.Next()
	}
}

// GetUser returns the authenticated identity, or nil outside RequireAuth.
func GetUser(c *fiber.Ctx) *AuthUser {
	if u, ok := c.Locals(authLocal).(AuthUser); ok {
		return &u
	}
	return nil
}
