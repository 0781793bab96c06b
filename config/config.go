package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	FrontendURL string
	// LINE Messaging API Configuration (primary notification channel)
	LineChannelAccessToken string
	LineChannelSecret      string
	LineBotUserID          string
	// Email Fallback Configuration
	EmailService    string // "smtp", "emailjs", "sendgrid" or "resend"
	EmailAPIKey     string
	EmailServiceID  string // EmailJS only
	EmailTemplateID string // EmailJS only
	ToEmail         string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPFromEmail   string // Verified sender email (different from SMTP login)
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitSubsidyThreshold int
	// Notification Delivery
	NotifyTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// LINE Messaging API Configuration
		LineChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
		LineBotUserID:          getEnv("LINE_BOT_USER_ID", ""),
		// Email Fallback Configuration
		EmailService:    getEnv("EMAIL_SERVICE", "smtp"),
		EmailAPIKey:     getEnv("EMAIL_API_KEY", ""),
		EmailServiceID:  getEnv("EMAIL_SERVICE_ID", ""),
		EmailTemplateID: getEnv("EMAIL_TEMPLATE_ID", ""),
		ToEmail:         getEnv("TO_EMAIL", ""),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:   getEnv("SMTP_FROM_EMAIL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),   // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 3), // 3 contact/estimate submissions per window
		RateLimitSubsidyThreshold: getEnvInt("RATE_LIMIT_SUBSIDY_THRESHOLD", 2), // 2 subsidy applications per window
		// Notification Delivery
		NotifyTimeoutSeconds: getEnvInt("NOTIFY_TIMEOUT_SECONDS", 10), // per delivery attempt
	}

	// Surface misconfiguration at startup instead of on the first submission.
	if cfg.LineChannelAccessToken == "" || cfg.LineChannelSecret == "" || cfg.LineBotUserID == "" {
		log.Println("WARNING: LINE channel not fully configured. Notifications will rely on the email fallback.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs outside production. Error
// details and localhost CORS origins are only enabled in development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
