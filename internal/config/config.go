package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Payment    PaymentDefaults
	Automation AutomationConfig
	S3         S3Config
	Stylist    StylistConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// PaymentDefaults seeds the payment settings row when none exists yet.
// Runtime values live in the database and are changed through the admin
// settings endpoint, never through the environment.
type PaymentDefaults struct {
	CODEnabled            bool
	CODFee                float64
	PrepaidDiscount       float64 // percent
	ShippingCharge        float64
	FreeShippingThreshold float64
}

// AutomationConfig holds the periodic back-office sweep configuration.
type AutomationConfig struct {
	Enabled           bool
	IntervalMinutes   int
	AutoShipAfterDays int
	AutoShipCourier   string
	LowStockThreshold int
	RestockLookback   int // days
	RestockLeadTime   int // days
	ReportWindowDays  int
}

// S3Config holds AWS S3 configuration for sales report archives.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "reports/")
}

// StylistConfig holds configuration for the AI styling advice service.
type StylistConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "anandam"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Payment: PaymentDefaults{
			CODEnabled:            getEnvAsBool("PAYMENT_COD_ENABLED", true),
			CODFee:                getEnvAsFloat("PAYMENT_COD_FEE", 150),
			PrepaidDiscount:       getEnvAsFloat("PAYMENT_PREPAID_DISCOUNT", 5),
			ShippingCharge:        getEnvAsFloat("PAYMENT_SHIPPING_CHARGE", 99),
			FreeShippingThreshold: getEnvAsFloat("PAYMENT_FREE_SHIPPING_THRESHOLD", 5000),
		},
		Automation: AutomationConfig{
			Enabled:           getEnvAsBool("AUTOMATION_ENABLED", false),
			IntervalMinutes:   getEnvAsInt("AUTOMATION_INTERVAL_MINUTES", 1440),
			AutoShipAfterDays: getEnvAsInt("AUTOMATION_AUTOSHIP_AFTER_DAYS", 3),
			AutoShipCourier:   getEnv("AUTOMATION_AUTOSHIP_COURIER", "Delhivery"),
			LowStockThreshold: getEnvAsInt("AUTOMATION_LOW_STOCK_THRESHOLD", 5),
			RestockLookback:   getEnvAsInt("AUTOMATION_RESTOCK_LOOKBACK_DAYS", 30),
			RestockLeadTime:   getEnvAsInt("AUTOMATION_RESTOCK_LEAD_TIME_DAYS", 30),
			ReportWindowDays:  getEnvAsInt("AUTOMATION_REPORT_WINDOW_DAYS", 7),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "ap-south-1"),
			Prefix:  getEnv("S3_PREFIX", "reports/"),
		},
		Stylist: StylistConfig{
			Enabled: getEnvAsBool("STYLIST_ENABLED", false),
			APIKey:  getEnv("STYLIST_API_KEY", ""),
			Model:   getEnv("STYLIST_MODEL", "gemini-2.0-flash"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Payment.CODFee < 0 || c.Payment.ShippingCharge < 0 || c.Payment.FreeShippingThreshold < 0 {
		return fmt.Errorf("payment amounts cannot be negative")
	}

	if c.Payment.PrepaidDiscount < 0 || c.Payment.PrepaidDiscount > 100 {
		return fmt.Errorf("invalid prepaid discount percentage: %f", c.Payment.PrepaidDiscount)
	}

	if c.Automation.Enabled {
		if c.Automation.IntervalMinutes < 1 {
			return fmt.Errorf("automation interval must be at least 1 minute")
		}
		if c.Automation.AutoShipAfterDays < 1 {
			return fmt.Errorf("auto-ship delay must be at least 1 day")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Stylist.Enabled && c.Stylist.APIKey == "" {
		return fmt.Errorf("stylist API key is required when the stylist is enabled")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
