package profile

import (
	"errors"

	"bazaar-backend/internal/middleware"
	"bazaar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

func NewHandlers(s *Service) *Handlers {
	return &Handlers{Service: s}
}

// SendVerificationEmail dispatches an OTP to the email in the request body.
func (h *Handlers) SendVerificationEmail(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return response.Error(c, "Email is required", fiber.StatusBadRequest)
	}

	if err := h.Service.SendVerificationEmail(c.Context(), body.Email); err != nil {
		log.Error().Err(err).Str("email", body.Email).Msg("failed to send verification OTP")
		return response.Error(c, "Failed to send verification email", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"message": "Verification OTP sent"})
}

// VerifyEmail consumes the OTP and promotes the account's email.
func (h *Handlers) VerifyEmail(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	var body struct {
		Email string `json:"email"`
		Pin   string `json:"pin"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Pin == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid verification token"})
	}

	userID, err := uuid.Parse(user.UserID)
	if err != nil {
		return response.Unauthorized(c)
	}

	updated, token, err := h.Service.VerifyEmail(c.Context(), userID, body.Email, body.Pin)
	if err != nil {
		if errors.Is(err, ErrInvalidOTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid verification token"})
		}
		if errors.Is(err, ErrUserNotFound) {
			return response.Error(c, "User not found", fiber.StatusNotFound)
		}
		return response.Error(c, "Email verification failed", fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"message": "Email verification successful",
		"email":   updated.Email,
		"token":   token,
		"name":    updated.Name,
	})
}

// VerificationStatus reports verification state for the email in the query.
func (h *Handlers) VerificationStatus(c *fiber.Ctx) error {
	email := c.Query("email")
	verified, err := h.Service.VerificationStatus(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error verifying email"})
	}
	return c.JSON(fiber.Map{"isVerified": verified})
}

// Edit updates the authenticated user's display profile.
func (h *Handlers) Edit(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	var body struct {
		Name        string `json:"name"`
		ImageURL    string `json:"imageUrl"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	userID, err := uuid.Parse(user.UserID)
	if err != nil {
		return response.Unauthorized(c)
	}

	updated, err := h.Service.UpdateProfile(c.Context(), userID, body.Name, body.ImageURL, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return response.Error(c, "User not found", fiber.StatusNotFound)
		}
		return response.Error(c, "Failed to update profile", fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"name":    updated.Name,
		"picture": updated.Picture,
		"phone":   updated.PhoneNumber,
	})
}

// Search returns the public profile for an email address.
func (h *Handlers) Search(c *fiber.Ctx) error {
	email := c.Query("useremail")
	if email == "" {
		return response.Error(c, "useremail is required", fiber.StatusBadRequest)
	}

	user, err := h.Service.Search(c.Context(), email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return response.Error(c, "User not found", fiber.StatusNotFound)
		}
		return response.Error(c, "Server error", fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"name":    user.Name,
		"picture": user.Picture,
	})
}
