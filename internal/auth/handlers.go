package auth

import (
	"errors"

	"bazaar-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service  *Service
	Verifier identity.Verifier
}

// GET /api/check-status
func (h *Handlers) CheckStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "online"})
}

// GET /auth-endpoint
func (h *Handlers) AuthEndpoint(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isAuthenticated": true})
}

// POST /register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Error creating user"})
	}

	user, err := h.Service.Register(c.Context(), body.Email, body.Name, body.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return c.Status(409).JSON(fiber.Map{"message": "User already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Error creating user", "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "User Created Successfully", "result": user})
}

// POST /login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Email not found"})
	}

	result, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrEmailNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Email not found"})
		}
		if errors.Is(err, ErrPasswordMismatch) {
			return c.Status(400).JSON(fiber.Map{"message": "Passwords does not match"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error", "error": err.Error()})
	}

	return c.Status(200).JSON(fiber.Map{
		"message": "Login Successful",
		"email":   result.Email,
		"token":   result.Token,
		"name":    result.Name,
		"picture": result.Picture,
		"phone":   result.Phone,
	})
}

// POST /google-auth
func (h *Handlers) GoogleAuth(c *fiber.Ctx) error {
	var body struct {
		Credential string `json:"credential"`
	}
	if err := c.BodyParser(&body); err != nil || body.Credential == "" {
		return c.Status(400).JSON(fiber.Map{"message": "No ID token provided"})
	}

	claims, err := h.Verifier.VerifyIDToken(c.Context(), body.Credential)
	if err != nil {
		log.Warn().Err(err).Msg("Google token verification failed")
		return c.Status(400).JSON(fiber.Map{"message": "Invalid Firebase ID token or authentication error", "error": err.Error()})
	}

	result, err := h.Service.GoogleExchange(c.Context(), claims)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid Firebase ID token or authentication error", "error": err.Error()})
	}

	status := 200
	if result.Created {
		status = 201
	}
	return c.Status(status).JSON(fiber.Map{
		"token":   result.Token,
		"email":   result.Email,
		"name":    result.Name,
		"picture": result.Picture,
		"phone":   result.Phone,
	})
}

// POST /phone-auth
func (h *Handlers) PhoneAuth(c *fiber.Ctx) error {
	var body struct {
		Credential  string `json:"credential"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.BodyParser(&body); err != nil || body.Credential == "" {
		return c.Status(400).JSON(fiber.Map{"message": "No ID token provided"})
	}

	claims, err := h.Verifier.VerifyIDToken(c.Context(), body.Credential)
	if err != nil {
		log.Warn().Err(err).Msg("Phone token verification failed")
		return c.Status(400).JSON(fiber.Map{"message": "Invalid Firebase ID token or authentication error", "error": err.Error()})
	}
	if claims.PhoneNumber != body.PhoneNumber {
		return c.Status(400).JSON(fiber.Map{"message": "Phone number mismatch"})
	}

	result, err := h.Service.PhoneExchange(c.Context(), body.PhoneNumber)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid Firebase ID token or authentication error", "error": err.Error()})
	}

	status := 200
	if result.Created {
		status = 201
	}
	return c.Status(status).JSON(fiber.Map{
		"token":   result.Token,
		"email":   result.Email,
		"name":    result.Name,
		"picture": result.Picture,
		"phone":   result.Phone,
	})
}
