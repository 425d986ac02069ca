package promotions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar-backend/internal/middleware"
	"bazaar-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderCreator struct {
	lastMetadata map[string]string
	err          error
}

func (f *fakeOrderCreator) CreateOrder(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastMetadata = metadata
	return &Order{ID: "order_test_1", Amount: amount, Currency: currency}, nil
}

func setupPromotionsTest(t *testing.T) (*Handlers, *gorm.DB, *fakeOrderCreator) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	orders := &fakeOrderCreator{}
	svc := &Service{DB: db, Orders: orders, Amount: 3000, Currency: "inr"}
	return &Handlers{Service: svc, Configured: true}, db, orders
}

func authAs(email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("auth_user", middleware.AuthUser{
			UserID:    "00000000-0000-0000-0000-000000000001",
			UserEmail: email,
		})
		return c.Next()
	}
}

func seedProduct(t *testing.T, db *gorm.DB, owner string) *models.Product {
	p := &models.Product{
		UserEmail: owner, Title: "Listing",
		Category: "Other", Subcategory: "Misc",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCreateOrder_Success(t *testing.T) {
	h, db, orders := setupPromotionsTest(t)
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Post("/create-promotion-order", authAs("owner@test.com"), h.CreateOrder)

	body, _ := json.Marshal(map[string]string{"productId": product.ID.String()})
	req := httptest.NewRequest("POST", "/create-promotion-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "order_test_1", result["orderId"])
	assert.Equal(t, float64(3000), result["amount"])
	assert.Equal(t, "inr", result["currency"])
	assert.Equal(t, product.ID.String(), orders.lastMetadata["productId"])
}

func TestCreateOrder_NotOwner(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Post("/create-promotion-order", authAs("intruder@test.com"), h.CreateOrder)

	body, _ := json.Marshal(map[string]string{"productId": product.ID.String()})
	req := httptest.NewRequest("POST", "/create-promotion-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCreateOrder_GatewayUnconfigured(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	h.Configured = false
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Post("/create-promotion-order", authAs("owner@test.com"), h.CreateOrder)

	body, _ := json.Marshal(map[string]string{"productId": product.ID.String()})
	req := httptest.NewRequest("POST", "/create-promotion-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Payment gateway configuration error", result["message"])
}

func TestCreateOrder_NotOwnerBeatsUnconfiguredGateway(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	h.Configured = false
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Post("/create-promotion-order", authAs("intruder@test.com"), h.CreateOrder)

	body, _ := json.Marshal(map[string]string{"productId": product.ID.String()})
	req := httptest.NewRequest("POST", "/create-promotion-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Product not found or you do not own this product", result["message"])
}

func TestCreateOrder_MissingProductID(t *testing.T) {
	h, _, _ := setupPromotionsTest(t)
	app := fiber.New()
	app.Post("/create-promotion-order", authAs("owner@test.com"), h.CreateOrder)

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("POST", "/create-promotion-order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestVerifyPayment_ActivatesWindow(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Post("/verify-promotion-payment", authAs("owner@test.com"), h.VerifyPayment)

	body, _ := json.Marshal(map[string]string{
		"payment_id": "pay_1",
		"order_id":   "order_1",
		"signature":  "ignored",
		"productId":  product.ID.String(),
	})
	req := httptest.NewRequest("POST", "/verify-promotion-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.True(t, stored.IsPromoted)
	assert.Equal(t, "pay_1", stored.PromotionPaymentID)
	assert.Equal(t, "order_1", stored.PromotionOrderID)
	require.NotNil(t, stored.PromotionEndDate)
	expected := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, *stored.PromotionEndDate, time.Minute)
}

func TestUpdateStatus_KeepsPaymentReferences(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	product := seedProduct(t, db, "owner@test.com")
	product.PromotionPaymentID = "pay_existing"
	product.PromotionOrderID = "order_existing"
	require.NoError(t, db.Save(product).Error)

	app := fiber.New()
	app.Post("/update-promotion-status", authAs("owner@test.com"), h.UpdateStatus)

	body, _ := json.Marshal(map[string]string{"productId": product.ID.String()})
	req := httptest.NewRequest("POST", "/update-promotion-status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.True(t, stored.IsPromoted)
	assert.Equal(t, "pay_existing", stored.PromotionPaymentID)
	assert.Equal(t, "order_existing", stored.PromotionOrderID)
}

func TestStatus_ReportsOwnership(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)
	product := seedProduct(t, db, "owner@test.com")

	app := fiber.New()
	app.Get("/promotion-status/:productId", authAs("owner@test.com"), h.Status)

	resp, err := app.Test(httptest.NewRequest("GET", "/promotion-status/"+product.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, false, result["isPromoted"])
	assert.Equal(t, true, result["isOwner"])
}

func TestSweepExpired(t *testing.T) {
	h, db, _ := setupPromotionsTest(t)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)
	expired := seedProduct(t, db, "a@test.com")
	expired.IsPromoted = true
	expired.PromotionEndDate = &past
	require.NoError(t, db.Save(expired).Error)

	active := seedProduct(t, db, "b@test.com")
	active.IsPromoted = true
	active.PromotionEndDate = &future
	require.NoError(t, db.Save(active).Error)

	require.NoError(t, h.Service.SweepExpired(context.Background()))

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", expired.ID).Error)
	assert.False(t, stored.IsPromoted)
	stored = models.Product{}
	require.NoError(t, db.First(&stored, "id = ?", active.ID).Error)
	assert.True(t, stored.IsPromoted)
}
