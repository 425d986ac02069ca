package wishlist

import (
	"errors"

	"bazaar-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// POST /wishlist/add
func (h *Handlers) Add(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	user := middleware.GetUser(c)
	if err := h.Service.Add(c.Context(), user.UserEmail, productID); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		case errors.Is(err, ErrAlreadyExists):
			return c.Status(400).JSON(fiber.Map{"message": "Product already in wishlist"})
		default:
			return c.Status(500).JSON(fiber.Map{"message": "Server error"})
		}
	}
	return c.Status(200).JSON(fiber.Map{"message": "Added to wishlist successfully"})
}

// GET /wishlist
func (h *Handlers) List(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	items, err := h.Service.List(c.Context(), user.UserEmail)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(200).JSON(items)
}

// GET /wishlist/check/:productId
func (h *Handlers) Check(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(200).JSON(fiber.Map{"inWishlist": false})
	}
	user := middleware.GetUser(c)
	in, err := h.Service.Contains(c.Context(), user.UserEmail, productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(200).JSON(fiber.Map{"inWishlist": in})
}

// DELETE /wishlist/remove/:productId
func (h *Handlers) Remove(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(200).JSON(fiber.Map{"message": "Removed from wishlist successfully"})
	}
	user := middleware.GetUser(c)
	if err := h.Service.Remove(c.Context(), user.UserEmail, productID); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(200).JSON(fiber.Map{"message": "Removed from wishlist successfully"})
}
