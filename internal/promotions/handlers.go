package promotions

import (
	"errors"

	"bazaar-backend/internal/middleware"
	"bazaar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service    *Service
	Configured bool // gateway credentials present
}

// POST /create-promotion-order
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return response.Error(c, "Product ID is required", 400)
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		return response.Error(c, "Product not found or you do not own this product", 404)
	}

	// Ownership is resolved before the gateway check so an unowned listing
	// gets 404 even when the gateway is unconfigured.
	user := middleware.GetUser(c)
	if _, err := h.Service.OwnedProduct(c.Context(), productID, user.UserEmail); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return response.Error(c, err.Error(), 404)
		}
		return response.GatewayError(c, "Server error", 500, err)
	}

	if !h.Configured {
		log.Error().Msg("Payment gateway API keys are missing in environment variables")
		return response.Error(c, "Payment gateway configuration error", 500)
	}

	order, err := h.Service.CreateOrder(c.Context(), productID, user.UserEmail)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return response.Error(c, err.Error(), 404)
		}
		log.Error().Err(err).Msg("Payment gateway error")
		if errors.Is(err, ErrGatewayAuth) {
			return response.GatewayError(c, "Payment gateway authentication failed. Please check API credentials.", 500, err)
		}
		return response.GatewayError(c, "Error creating payment order", 500, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// POST /verify-promotion-payment
//
// Signature verification is intentionally skipped: the caller-supplied
// payment and order identifiers are trusted as-is.
func (h *Handlers) VerifyPayment(c *fiber.Ctx) error {
	var body struct {
		PaymentID string `json:"payment_id"`
		OrderID   string `json:"order_id"`
		Signature string `json:"signature"`
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400)
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		return response.Error(c, "Product not found or you do not own this product", 404)
	}

	user := middleware.GetUser(c)
	product, err := h.Service.Activate(c.Context(), productID, user.UserEmail, body.PaymentID, body.OrderID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return response.Error(c, err.Error(), 404)
		}
		return response.GatewayError(c, "Server error", 500, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"success": true,
		"message": "Product promotion successful",
		"product": product,
	})
}

// GET /promotion-status/:productId
func (h *Handlers) Status(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return response.Error(c, "Product not found", 404)
	}
	product, err := h.Service.Status(c.Context(), productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return response.Error(c, "Product not found", 404)
		}
		return response.GatewayError(c, "Server error", 500, err)
	}

	user := middleware.GetUser(c)
	return c.Status(200).JSON(fiber.Map{
		"isPromoted":         product.IsPromoted,
		"promotionStartDate": product.PromotionStartDate,
		"promotionEndDate":   product.PromotionEndDate,
		"isOwner":            product.UserEmail == user.UserEmail,
	})
}

// POST /update-promotion-status
//
// Client-side promotion activation, without payment references.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return response.Error(c, "Product ID is required", 400)
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		return response.Error(c, "Product not found or you do not own this product", 404)
	}

	user := middleware.GetUser(c)
	product, err := h.Service.Activate(c.Context(), productID, user.UserEmail, "", "")
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return response.Error(c, err.Error(), 404)
		}
		return response.GatewayError(c, "Server error", 500, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"success": true,
		"message": "Product promotion status updated successfully",
		"product": product,
	})
}
