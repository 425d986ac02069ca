package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper). Loaded once at startup
// and passed by reference into the components that need it.
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	StripeSecretKey     string
	PromotionAmount     int64  // promotion price in minor units
	PromotionCurrency   string // lowercase ISO code, e.g. "inr"
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	FirebaseAPIKey      string // Identity Toolkit key for Google/phone token exchange
	BrevoAPIKey         string
	MailFrom            string
	FrontendOrigin      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	amount := viper.GetInt64("PROMOTION_AMOUNT")
	if amount == 0 {
		amount = 3000 // 30 INR in paise
	}
	currency := strings.ToLower(viper.GetString("PROMOTION_CURRENCY"))
	if currency == "" {
		currency = "inr"
	}

	origin := viper.GetString("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "https://localhost:3000"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		StripeSecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
		PromotionAmount:     amount,
		PromotionCurrency:   currency,
		CloudinaryCloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    viper.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		FirebaseAPIKey:      viper.GetString("FIREBASE_API_KEY"),
		BrevoAPIKey:         viper.GetString("BREVO_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		FrontendOrigin:      origin,
	}, nil
}
