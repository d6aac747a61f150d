package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Mail     MailConfig
	Admin    AdminConfig

	FrontendURL string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiryMins  int
	RefreshExpiryDays int
}

// PaymentConfig holds SSLCommerz gateway configuration
type PaymentConfig struct {
	StoreID       string
	StorePassword string
	Sandbox       bool
	SuccessURL    string
	FailURL       string
	CancelURL     string
}

// MailConfig holds outbound mail webhook configuration
type MailConfig struct {
	Enabled    bool
	WebhookURL string
	FromName   string
	FromEmail  string
}

// AdminConfig holds the bootstrap system administrator account
type AdminConfig struct {
	Email    string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		AppMode: getEnv("APP_MODE", "development"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "alumnihub"),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", ""),
			AccessExpiryMins:  getEnvInt("JWT_ACCESS_EXPIRY_MINUTES", 15),
			RefreshExpiryDays: getEnvInt("JWT_REFRESH_EXPIRY_DAYS", 7),
		},
		Payment: PaymentConfig{
			StoreID:       getEnv("SSLCOMMERZ_STORE_ID", ""),
			StorePassword: getEnv("SSLCOMMERZ_STORE_PASSWORD", ""),
			Sandbox:       getEnvBool("SSLCOMMERZ_SANDBOX", true),
			SuccessURL:    getEnv("PAYMENT_SUCCESS_URL", ""),
			FailURL:       getEnv("PAYMENT_FAIL_URL", ""),
			CancelURL:     getEnv("PAYMENT_CANCEL_URL", ""),
		},
		Mail: MailConfig{
			Enabled:    getEnvBool("MAIL_ENABLED", false),
			WebhookURL: getEnv("MAIL_WEBHOOK_URL", ""),
			FromName:   getEnv("MAIL_FROM_NAME", "DIU AlumniHub"),
			FromEmail:  getEnv("MAIL_FROM_EMAIL", "noreply@alumnihub.example.com"),
		},
		Admin: AdminConfig{
			Email:    getEnv("SYSTEM_ADMIN_EMAIL", ""),
			Password: getEnv("SYSTEM_ADMIN_PASSWORD", ""),
		},
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "development"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("⚠️  Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("⚠️  Invalid boolean for %s, using default %t", key, fallback)
	}
	return fallback
}
