package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML/JSON keys to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port            int           `mapstructure:"port"`     // HTTP server port (default: 8080)
		BaseURL         string        `mapstructure:"base_url"` // Base URL used when printing short links
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`

	// Database configuration section
	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		Name   string `mapstructure:"name"`   // SQLite database file name
		DSN    string `mapstructure:"dsn"`    // PostgreSQL connection string
	} `mapstructure:"database"`

	// Auth configuration for password hashing and bearer tokens
	Auth struct {
		SecretKey        string        `mapstructure:"secret_key"` // HMAC key used to sign tokens
		TokenTTL         time.Duration `mapstructure:"token_ttl"`
		BcryptCost       int           `mapstructure:"bcrypt_cost"`
		AllowAdminSignup bool          `mapstructure:"allow_admin_signup"`
	} `mapstructure:"auth"`

	// ShortCode configuration for the code generator
	ShortCode struct {
		Length      int `mapstructure:"length"`
		MaxAttempts int `mapstructure:"max_attempts"` // Salted attempts before giving up
	} `mapstructure:"shortcode"`

	// Log configuration. An empty file keeps logs on stdout only.
	Log struct {
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`

	// Monitor configuration for the check-urls command
	Monitor struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"monitor"`
}

// LoadConfig loads the application configuration using Viper.
// It supports environment variable overrides and YAML configuration files.
// Returns a populated Config struct or an error if configuration loading fails.
func LoadConfig() (*Config, error) {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	// e.g., "auth.secret_key" becomes "AUTH_SECRET_KEY"
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is not fatal - defaults and env still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using default values")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Configuration loaded: Server Port=%d, DB Driver=%s, Code Length=%d, Token TTL=%v",
		cfg.Server.Port, cfg.Database.Driver, cfg.ShortCode.Length, cfg.Auth.TokenTTL)

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.name", "url_shortener.db")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("auth.secret_key", "")
	viper.SetDefault("auth.token_ttl", 20*time.Minute)
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("auth.allow_admin_signup", false)
	viper.SetDefault("shortcode.length", 8)
	viper.SetDefault("shortcode.max_attempts", 1000)
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size_mb", 10)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age_days", 28)
	viper.SetDefault("monitor.timeout", 5*time.Second)
}

// Validate checks the values that would otherwise fail much later at runtime.
// The secret key is checked by run-server only, so offline commands work without it.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres driver")
	}
	if c.ShortCode.Length < 1 || c.ShortCode.Length > 43 {
		return fmt.Errorf("shortcode.length must be between 1 and 43, got %d", c.ShortCode.Length)
	}
	if c.ShortCode.MaxAttempts < 1 {
		return fmt.Errorf("shortcode.max_attempts must be positive, got %d", c.ShortCode.MaxAttempts)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %v", c.Auth.TokenTTL)
	}
	return nil
}
