package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"bazaar-backend/internal/middleware"
	"bazaar-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Sweeper clears expired promotion flags before listing reads.
type Sweeper interface {
	SweepExpired(ctx context.Context) error
}

// ImageDestroyer removes a stored image by its public URL. Best-effort on
// ad deletion.
type ImageDestroyer interface {
	DestroyByURL(ctx context.Context, url string) error
}

type Handlers struct {
	Service *Service
	Sweeper Sweeper
	Images  ImageDestroyer
}

// POST /add_product
func (h *Handlers) AddProduct(c *fiber.Ctx) error {
	var in CreateProductInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user := middleware.GetUser(c)
	product := NormalizeForCreate(in, user.UserEmail)

	if err := h.Service.Create(c.Context(), product); err != nil {
		log.Error().Err(err).Msg("Error saving product")
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(500).JSON(fiber.Map{
				"error":            "Failed to save the product.",
				"details":          err.Error(),
				"validationErrors": ve.Fields,
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error":            "Failed to save the product.",
			"details":          err.Error(),
			"validationErrors": nil,
		})
	}

	return c.Status(200).JSON(fiber.Map{
		"message":   "The product has been saved successfully.",
		"productId": product.ID.String(),
	})
}

// GET /myads_view
func (h *Handlers) MyAds(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	products, err := h.Service.ByOwner(c.Context(), user.UserEmail)
	if err != nil {
		return c.Status(500).SendString("Server Error")
	}
	return c.JSON(products)
}

// DELETE /myads_delete/:id
func (h *Handlers) DeleteAd(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	user := middleware.GetUser(c)

	product, err := h.Service.DeleteOwned(c.Context(), id, user.UserEmail)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Server Error"})
	}

	if h.Images != nil {
		if product.OwnerPicture != "" {
			if err := h.Images.DestroyByURL(c.Context(), product.OwnerPicture); err != nil {
				log.Warn().Err(err).Msg("Failed to delete owner picture")
			}
		}
		for _, slot := range product.PicSlots() {
			if *slot == "" {
				continue
			}
			if err := h.Images.DestroyByURL(c.Context(), *slot); err != nil {
				log.Warn().Err(err).Str("url", *slot).Msg("Failed to delete product picture")
			}
		}
	}

	return c.JSON(product)
}

// POST /previewad/:id
func (h *Handlers) PreviewAd(c *fiber.Ctx) error {
	product, err := h.findByParam(c)
	if err != nil {
		return previewError(c, err)
	}
	user := middleware.GetUser(c)
	return c.JSON(fiber.Map{"product": product, "own": product.UserEmail == user.UserEmail})
}

// POST /previewad/notloggedin/:id
func (h *Handlers) PreviewAdPublic(c *fiber.Ctx) error {
	product, err := h.findByParam(c)
	if err != nil {
		return previewError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// GET /getProducts
func (h *Handlers) GetProducts(c *fiber.Ctx) error {
	// Expired promotions are cleared before the read so promoted listings are
	// never served stale.
	if h.Sweeper != nil {
		if err := h.Sweeper.SweepExpired(c.Context()); err != nil {
			return c.Status(500).SendString("Server Error")
		}
	}
	products, err := h.Service.All(c.Context())
	if err != nil {
		return c.Status(500).SendString("Server Error")
	}
	return c.Status(200).JSON(products)
}

// GET /getProductsbyCategory/:category
func (h *Handlers) GetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.Service.ByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return c.Status(500).SendString("Server Error")
	}
	return c.Status(200).JSON(products)
}

// GET /search?q=
func (h *Handlers) Search(c *fiber.Ctx) error {
	products, err := h.Service.Search(c.Context(), c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal Server Error"})
	}
	return c.Status(200).JSON(products)
}

// GET /getProductsbyemail?useremail=
func (h *Handlers) GetProductsByEmail(c *fiber.Ctx) error {
	products, err := h.Service.ByOwner(c.Context(), c.Query("useremail"))
	if err != nil {
		return c.Status(500).SendString("Server Error")
	}
	return c.Status(200).JSON(products)
}

// POST /updateproduct/:id
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found or you do not own this product"})
	}
	user := middleware.GetUser(c)

	product, err := h.Service.OwnedByID(c.Context(), id, user.UserEmail)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			// Deliberately 404, not 403: ownership mismatches do not reveal
			// whether the listing exists on this route.
			return c.Status(404).JSON(fiber.Map{"message": "Product not found or you do not own this product"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error", "error": err.Error()})
	}

	var in UpdateProductInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}

	ApplyUpdate(product, in)

	if err := h.Service.Save(c.Context(), product); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error", "error": err.Error()})
	}

	return c.Status(200).JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": fiber.Map{
			"id":          product.ID,
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"jobData":     product.JobData.Data(),
		},
	})
}

// POST /update_job_data
func (h *Handlers) UpdateJobData(c *fiber.Ctx) error {
	var body struct {
		ProductID string          `json:"productId"`
		JobData   json.RawMessage `json:"jobData"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if body.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Product ID is required"})
	}
	id, err := uuid.Parse(body.ProductID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	product, err := h.Service.ByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Server error", "error": err.Error()})
	}

	user := middleware.GetUser(c)
	if product.UserEmail != user.UserEmail {
		return c.Status(403).JSON(fiber.Map{"message": "Not authorized to update this product"})
	}

	jd := SanitizeJobData(product, body.JobData)
	product.JobData = datatypes.NewJSONType(jd)

	if err := h.Service.Save(c.Context(), product); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error", "error": err.Error()})
	}

	return c.Status(200).JSON(fiber.Map{
		"message": "Job data updated successfully",
		"product": fiber.Map{
			"id":      product.ID,
			"title":   product.Title,
			"jobData": jd,
		},
	})
}

// GET /debug/product/:id
func (h *Handlers) DebugProduct(c *fiber.Ctx) error {
	product, err := h.findByParam(c)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Server error", "message": err.Error()})
	}

	keys := make([]string, 0, len(product.PropertyData))
	for k := range product.PropertyData {
		keys = append(keys, k)
	}
	stringified, _ := json.Marshal(product.PropertyData)

	return c.JSON(fiber.Map{
		"diagnostics": fiber.Map{
			"propertyDataExists":      len(product.PropertyData) > 0,
			"propertyDataKeys":        keys,
			"propertyDataStringified": string(stringified),
			"databaseId":              product.ID.String(),
		},
		"rawProduct": product,
	})
}

func (h *Handlers) findByParam(c *fiber.Ctx) (*models.Product, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, ErrProductNotFound
	}
	return h.Service.ByID(c.Context(), id)
}

func previewError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrProductNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.Status(500).JSON(fiber.Map{"message": "Server error"})
}
