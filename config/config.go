package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	CheckinChannel     string

	// Object storage configuration. Keys are uploaded through the app
	// filesystem; PublicStorageURL is the base under which they are served.
	PublicStorageURL string
	StoragePrefix    string

	// Mail configuration
	MailSenderName    string
	MailSenderAddress string

	// Admin auth
	AdminSecretHash string
	SessionTTL      time.Duration

	// Cache configuration
	CacheTTL time.Duration

	// Listing configuration
	PageSize     int
	SerialPrefix string

	// Notification reconciliation
	SendIntentTTL     time.Duration
	ReconcileInterval time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		CheckinChannel:     getEnv("CHECKIN_CHANNEL", "checkin-feed"),

		// Storage
		PublicStorageURL: getEnv("PUBLIC_STORAGE_URL", "http://localhost:8090/storage"),
		StoragePrefix:    getEnv("STORAGE_PREFIX", "tickets"),

		// Mail
		MailSenderName:    getEnv("MAIL_SENDER_NAME", "Tickets"),
		MailSenderAddress: getEnv("MAIL_SENDER_ADDRESS", "tickets@example.com"),

		// Admin auth
		AdminSecretHash: getEnv("ADMIN_SECRET_HASH", ""),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", "12h"),

		// Cache
		CacheTTL: getEnvAsDuration("CACHE_TTL", "24h"),

		// Listing
		PageSize:     getEnvAsInt("PAGE_SIZE", 20),
		SerialPrefix: getEnv("SERIAL_PREFIX", "NIV"),

		// Notifications
		SendIntentTTL:     getEnvAsDuration("SEND_INTENT_TTL", "48h"),
		ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", "15m"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
