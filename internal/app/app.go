package app

import (
	"bazaar-backend/internal/auth"
	"bazaar-backend/internal/catalog"
	"bazaar-backend/internal/chat"
	"bazaar-backend/internal/config"
	"bazaar-backend/internal/database"
	"bazaar-backend/internal/emails"
	"bazaar-backend/internal/identity"
	"bazaar-backend/internal/images"
	"bazaar-backend/internal/middleware"
	"bazaar-backend/internal/profile"
	"bazaar-backend/internal/promotions"
	"bazaar-backend/internal/wishlist"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and redis client are handed back so the
// caller can ping them on startup.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(cfg.FrontendOrigin))
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	rdb, err := openRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	RegisterRoutes(app, cfg, db, rdb)
	return app, db, rdb, nil
}

func openRedis(url string) (*redis.Client, error) {
	if url == "" {
		return redis.NewClient(&redis.Options{Addr: "localhost:6379"}), nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// RegisterRoutes wires every module onto the app. Split out of CreateApp so
// tests can mount routes on their own DB and redis instances.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	tokens := &auth.TokenIssuer{Secret: cfg.JWTSecret}

	var imageClient *images.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		imageClient = &images.Client{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		}
	}

	promotionService := &promotions.Service{
		DB:       db,
		Orders:   &promotions.StripeOrderCreator{SecretKey: cfg.StripeSecretKey},
		Amount:   cfg.PromotionAmount,
		Currency: cfg.PromotionCurrency,
	}
	promotionHandlers := &promotions.Handlers{
		Service:    promotionService,
		Configured: cfg.StripeSecretKey != "",
	}

	catalogService := &catalog.Service{DB: db}
	catalogHandlers := &catalog.Handlers{
		Service: catalogService,
		Sweeper: promotionService,
	}
	if imageClient != nil {
		catalogHandlers.Images = imageClient
	}

	chatHandlers := &chat.Handlers{Service: &chat.Service{DB: db}}
	wishlistHandlers := &wishlist.Handlers{Service: &wishlist.Service{DB: db}}

	authService := &auth.Service{DB: db, Tokens: tokens}
	authHandlers := &auth.Handlers{
		Service:  authService,
		Verifier: &identity.HTTPVerifier{APIKey: cfg.FirebaseAPIKey},
	}

	var mailer emails.Sender
	if cfg.BrevoAPIKey != "" {
		mailer = &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	}
	profileHandlers := profile.NewHandlers(&profile.Service{
		DB:     db,
		Rdb:    rdb,
		Mailer: mailer,
		Tokens: tokens,
	})

	// Auth
	app.Get("/api/check-status", authHandlers.CheckStatus)
	app.Get("/auth-endpoint", requireAuth, authHandlers.AuthEndpoint)
	app.Post("/register", authHandlers.Register)
	app.Post("/login", authHandlers.Login)
	app.Post("/google-auth", authHandlers.GoogleAuth)
	app.Post("/phone-auth", authHandlers.PhoneAuth)

	// Profile + email verification
	app.Post("/send-verification-email", profileHandlers.SendVerificationEmail)
	app.Post("/verify-email", requireAuth, profileHandlers.VerifyEmail)
	app.Get("/verification-status", profileHandlers.VerificationStatus)
	app.Post("/profile_edit", requireAuth, profileHandlers.Edit)
	app.Get("/profilesearch", profileHandlers.Search)

	// Chat
	app.Post("/sendMessage", requireAuth, chatHandlers.SendMessage)
	app.Get("/api/new-messages", requireAuth, chatHandlers.NewMessages)
	app.Get("/api/newchats", requireAuth, chatHandlers.NewChats)
	app.Post("/deletechat/:id", requireAuth, chatHandlers.DeleteChat)
	app.Post("/mark-messages-read", requireAuth, chatHandlers.MarkMessagesRead)
	app.Get("/unreadMessages", requireAuth, chatHandlers.UnreadMessages)

	// Promotions
	app.Post("/create-promotion-order", requireAuth, promotionHandlers.CreateOrder)
	app.Post("/verify-promotion-payment", requireAuth, promotionHandlers.VerifyPayment)
	app.Get("/promotion-status/:productId", requireAuth, promotionHandlers.Status)
	app.Post("/update-promotion-status", requireAuth, promotionHandlers.UpdateStatus)

	// Catalog
	app.Post("/add_product", requireAuth, catalogHandlers.AddProduct)
	app.Get("/myads_view", requireAuth, catalogHandlers.MyAds)
	app.Delete("/myads_delete/:id", requireAuth, catalogHandlers.DeleteAd)
	app.Post("/previewad/:id", requireAuth, catalogHandlers.PreviewAd)
	app.Post("/previewad/notloggedin/:id", catalogHandlers.PreviewAdPublic)
	app.Get("/getProducts", catalogHandlers.GetProducts)
	app.Get("/getProductsbyCategory/:category", catalogHandlers.GetProductsByCategory)
	app.Get("/search", catalogHandlers.Search)
	app.Get("/getProductsbyemail", catalogHandlers.GetProductsByEmail)
	app.Post("/updateproduct/:id", requireAuth, catalogHandlers.UpdateProduct)
	app.Post("/update_job_data", requireAuth, catalogHandlers.UpdateJobData)
	app.Get("/debug/product/:id", catalogHandlers.DebugProduct)

	// Wishlist
	app.Post("/wishlist/add", requireAuth, wishlistHandlers.Add)
	app.Get("/wishlist", requireAuth, wishlistHandlers.List)
	app.Get("/wishlist/check/:productId", requireAuth, wishlistHandlers.Check)
	app.Delete("/wishlist/remove/:productId", requireAuth, wishlistHandlers.Remove)
}
