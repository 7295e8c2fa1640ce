// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the client core and the dev gateway.
// A single struct keeps the env surface in one place; each binary only
// reads the fields it cares about.
type Config struct {
	// Client configuration
	GatewayBaseURL string        `mapstructure:"GATEWAY_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	TokenFilePath  string        `mapstructure:"TOKEN_FILE_PATH"`

	// Logging configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Gateway server configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Gateway database configuration. The dev gateway defaults to a local
	// sqlite file; DB_DRIVER=postgres switches to the postgres DSN fields.
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBPath     string `mapstructure:"DB_PATH"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSL_MODE"`
	DBTimezone string `mapstructure:"DB_TIMEZONE"`

	// Token minting
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTIssuer   string        `mapstructure:"JWT_ISSUER"`
	JWTTokenTTL time.Duration `mapstructure:"JWT_TOKEN_TTL_HOURS"`

	// OTP issuance
	OTPTTL          time.Duration `mapstructure:"OTP_TTL_SECONDS"`
	OTPStoreBackend string        `mapstructure:"OTP_STORE_BACKEND"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	OTPSweepSpec    string        `mapstructure:"OTP_SWEEP_SPEC"`
}

// Load attempts to load configuration from a .env file (if present) and
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Client defaults
	v.SetDefault("GATEWAY_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	v.SetDefault("TOKEN_FILE_PATH", defaultTokenFilePath())

	// Logging defaults
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Gateway server defaults
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	// Database defaults
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "devgateway.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "bluestock_dev")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")

	// Token defaults. The original front-end shipped a "90 day" mock token;
	// keep the same lifetime for the dev gateway.
	v.SetDefault("JWT_SECRET", "dev-only-secret-change-me")
	v.SetDefault("JWT_ISSUER", "bluestock-devgateway")
	v.SetDefault("JWT_TOKEN_TTL_HOURS", 90*24)

	// OTP defaults
	v.SetDefault("OTP_TTL_SECONDS", 300)
	v.SetDefault("OTP_STORE_BACKEND", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("OTP_SWEEP_SPEC", "@every 1m")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.RequestTimeout = time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.JWTTokenTTL = time.Duration(v.GetInt("JWT_TOKEN_TTL_HOURS")) * time.Hour
	cfg.OTPTTL = time.Duration(v.GetInt("OTP_TTL_SECONDS")) * time.Second

	if cfg.OTPStoreBackend != "memory" && cfg.OTPStoreBackend != "redis" {
		return nil, fmt.Errorf("OTP_STORE_BACKEND must be 'memory' or 'redis', got %q", cfg.OTPStoreBackend)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be 'sqlite' or 'postgres', got %q", cfg.DBDriver)
	}

	return &cfg, nil
}

// defaultTokenFilePath places the persisted token under the user config
// directory, falling back to the working directory when it is unavailable.
func defaultTokenFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".bluestock_token"
	}
	return filepath.Join(dir, "bluestock", "token")
}

// PostgresDSN builds the GORM postgres DSN from the individual DB_* fields.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}
