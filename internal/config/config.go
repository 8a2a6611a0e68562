package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ConfigError names the variable that is missing or still a placeholder,
// so deployment problems fail fast instead of surfacing as a network
// error halfway through a request.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

type Config struct {
	Port        string
	DatabaseURL string
	AdminEmail  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailInbox    string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	IdentityBaseURL string
	IdentityAPIKey  string

	CloudinaryCloudName string
}

// Load reads .env when present and the environment always. Only the
// database and admin address are hard requirements; mail, queue and CDN
// degrade per their own not-configured paths.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:                getenv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPassword:        os.Getenv("SMTP_PASS"),
		MailFrom:            getenv("MAIL_FROM", "no-reply@jatinenterprises.in"),
		MailInbox:           os.Getenv("MAIL_INBOX"),
		RabbitUser:          getenv("RABBITMQ_USER", "guest"),
		RabbitPass:          getenv("RABBITMQ_PASS", "guest"),
		RabbitHost:          getenv("RABBITMQ_HOST", "localhost"),
		RabbitPort:          getenv("RABBITMQ_PORT", "5672"),
		IdentityBaseURL:     os.Getenv("IDENTITY_BASE_URL"),
		IdentityAPIKey:      os.Getenv("IDENTITY_API_KEY"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
	}

	port, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, &ConfigError{Key: "SMTP_PORT", Reason: "must be a number"}
	}
	cfg.SMTPPort = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return &ConfigError{Key: "DATABASE_URL", Reason: "is required"}
	}
	if isPlaceholder(c.DatabaseURL) {
		return &ConfigError{Key: "DATABASE_URL", Reason: "is still a placeholder"}
	}
	if c.AdminEmail == "" {
		return &ConfigError{Key: "ADMIN_EMAIL", Reason: "is required"}
	}
	if isPlaceholder(c.AdminEmail) {
		return &ConfigError{Key: "ADMIN_EMAIL", Reason: "is still a placeholder"}
	}
	return nil
}

func isPlaceholder(v string) bool {
	return strings.Contains(v, "YOUR_") || strings.Contains(v, "CHANGE_ME")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
