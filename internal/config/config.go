package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Billing  BillingConfig
	Session  SessionConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type BillingConfig struct {
	MidtransServerKey string
	MidtransEnv       string // "sandbox" or "production"
}

// SessionConfig tunes the in-memory advisor session store. The defaults match
// production; tests and staging override any of them.
type SessionConfig struct {
	TTL             time.Duration
	Capacity        int
	RateLimitWindow time.Duration
	RateLimitMax    int
	SweepInterval   time.Duration
}

type APIKeys struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GenerationTopic    string // watermill topic for generation events
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Stack Navigator"),
		},
		Billing: BillingConfig{
			MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransEnv:       getEnv("MIDTRANS_ENV", "sandbox"),
		},
		Session: SessionConfig{
			TTL:             getEnvAsMinutes("SESSION_TTL_MINUTES", 30),
			Capacity:        getEnvAsInt("SESSION_CAPACITY", 1000),
			RateLimitWindow: getEnvAsMinutes("SESSION_RATE_WINDOW_MINUTES", 10),
			RateLimitMax:    getEnvAsInt("SESSION_RATE_MAX", 5),
			SweepInterval:   getEnvAsMinutes("SESSION_SWEEP_MINUTES", 5),
		},
		Keys: APIKeys{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
			GenerationTopic:    getEnv("GENERATION_TOPIC_NAME", "PROJECT_GENERATED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMinutes(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Minute
}
