package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Push      PushConfig
	Mail      MailConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the MongoDB document store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig carries the admin credentials and token signing material.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

// PushConfig contains credentials for the push notification provider.
type PushConfig struct {
	BaseURL    string
	ServerKey  string
	AdminTopic string
}

// MailConfig contains credentials for the transactional email provider.
type MailConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
}

// SheetsConfig contains configuration required to export KPI snapshots to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SnapshotRange   string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	SnapshotCron string
	LowStockCron string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTL, err := time.ParseDuration(getenvWithDefault("AUTH_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "ashe"),
		},
		Auth: AuthConfig{
			AdminEmail:        os.Getenv("ADMIN_EMAIL"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			TokenTTL:          tokenTTL,
		},
		Push: PushConfig{
			BaseURL:    getenvWithDefault("PUSH_BASE_URL", "https://fcm.googleapis.com"),
			ServerKey:  os.Getenv("PUSH_SERVER_KEY"),
			AdminTopic: getenvWithDefault("PUSH_ADMIN_TOPIC", "admin-alerts"),
		},
		Mail: MailConfig{
			BaseURL:     getenvWithDefault("MAIL_BASE_URL", "https://api.resend.com"),
			APIKey:      os.Getenv("MAIL_API_KEY"),
			FromAddress: getenvWithDefault("MAIL_FROM_ADDRESS", "store@ashe.tn"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			SnapshotRange:   getenvWithDefault("GOOGLE_SHEET_SNAPSHOT_RANGE", "Snapshots!A:N"),
		},
		Reporting: ReportingConfig{
			SnapshotCron: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 2 * * *"),
			LowStockCron: getenvWithDefault("LOW_STOCK_CRON_SCHEDULE", "0 * * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Tunis"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. Push,
// mail and sheets credentials are optional; the wiring layer disables those
// integrations when their keys are missing.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	switch {
	case c.Auth.AdminEmail == "":
		return errors.New("ADMIN_EMAIL must be provided")
	case c.Auth.AdminPasswordHash == "":
		return errors.New("ADMIN_PASSWORD_HASH must be provided")
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	if c.Reporting.SnapshotCron == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.LowStockCron == "" {
		return errors.New("LOW_STOCK_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
