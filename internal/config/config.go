// Package config builds the explicit runtime configuration value that every
// component receives at startup. Values come from defaults, an optional
// .env file, and finally the process environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the service.
type Config struct {
	ListenAddr string

	// StorageDriver selects the record store backend: file, memory,
	// mysql, or redis.
	StorageDriver string
	DataDir       string
	MySQLDSN      string
	RedisAddr     string

	TokenTTL time.Duration

	// PaymentProvider selects the charge gateway: stripe or razorpay.
	PaymentProvider   string
	StripeSecretKey   string
	StripeBaseURL     string
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	MailgunBaseURL string
	MailgunDomain  string
	MailgunAPIKey  string
	MailSender     string

	AMQPURL      string
	AMQPExchange string

	GatewayTimeout time.Duration
}

// Load applies defaults, overlays an optional .env file, and reads the
// environment.
func Load() *Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:        ":" + envOr("PORT", "8080"),
		StorageDriver:     envOr("STORAGE_DRIVER", "file"),
		DataDir:           envOr("DATA_DIR", ".data"),
		MySQLDSN:          os.Getenv("MYSQL_DSN"),
		RedisAddr:         envOr("REDIS_ADDR", "localhost:6379"),
		TokenTTL:          time.Hour,
		PaymentProvider:   envOr("PAYMENT_PROVIDER", "stripe"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		StripeBaseURL:     os.Getenv("STRIPE_BASE_URL"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Currency:          envOr("CURRENCY", "usd"),
		MailgunBaseURL:    os.Getenv("MAILGUN_BASE_URL"),
		MailgunDomain:     os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:     os.Getenv("MAILGUN_API_KEY"),
		MailSender:        envOr("MAIL_SENDER", "orders@pizza.local"),
		AMQPURL:           os.Getenv("RABBITMQ_URL"),
		AMQPExchange:      envOr("RABBITMQ_EXCHANGE", "order.exchange"),
		GatewayTimeout:    5 * time.Second,
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
