package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LLM providers supported for text generation.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the API server configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Analysis AnalysisConfig
	S3       S3Config
	Storage  StorageConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host         string
	Port         int
	StaticDir    string
	MaxBodyBytes int64
	CORSOrigin   string
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
	AutoMigrate     bool
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the optional API key. An empty key disables the check.
type AuthConfig struct {
	APIKey string
}

// AnalysisConfig configures the vision and text generation backends.
type AnalysisConfig struct {
	GoogleAPIKey   string
	VisionModel    string
	TextModel      string
	Provider       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	TimeoutSeconds int
}

// Timeout returns the per-call analysis timeout.
func (c *AnalysisConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// S3Config holds AWS S3 configuration for uploaded food images.
type S3Config struct {
	Enabled   bool
	Bucket    string
	Region    string
	Prefix    string // Path prefix within bucket (e.g., "food-images/")
	PublicURL string // Base URL objects are served from; defaults to the virtual-hosted bucket URL
}

// StorageConfig holds the local image directory used when S3 is unavailable.
type StorageConfig struct {
	ImageDir string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 3000),
			StaticDir:    getEnv("STATIC_DIR", "UI"),
			MaxBodyBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 50<<20)),
			CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		},
		Database: databaseFromEnv(),
		Logger:   loggerFromEnv(),
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Analysis: AnalysisConfig{
			GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
			VisionModel:    getEnv("GEMINI_VISION_MODEL", "gemini-2.5-flash"),
			TextModel:      getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
			Provider:       getEnv("LLM_PROVIDER", ProviderGemini),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			TimeoutSeconds: getEnvAsInt("ANALYSIS_TIMEOUT_SECONDS", 60),
		},
		S3: S3Config{
			Enabled:   getEnvAsBool("S3_ENABLED", false),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Prefix:    getEnv("S3_PREFIX", "food-images/"),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
		Storage: StorageConfig{
			ImageDir: getEnv("IMAGE_DIR", "uploads"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDatabase loads the database and logger settings only.
func LoadDatabase() (*DatabaseConfig, *LoggerConfig, error) {
	db := databaseFromEnv()
	logger := loggerFromEnv()

	if err := db.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := logger.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &db, &logger, nil
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", "infinium"),
		MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
		MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
		MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
	}
}

func loggerFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max body bytes must be positive")
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if c.Analysis.GoogleAPIKey == "" {
		return fmt.Errorf("google API key is required")
	}

	switch c.Analysis.Provider {
	case ProviderGemini:
	case ProviderOpenAI:
		if c.Analysis.OpenAIAPIKey == "" {
			return fmt.Errorf("openai API key is required when LLM provider is openai")
		}
	default:
		return fmt.Errorf("invalid LLM provider: %s (must be gemini or openai)", c.Analysis.Provider)
	}

	if c.Analysis.TimeoutSeconds < 1 {
		return fmt.Errorf("analysis timeout must be at least 1 second")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Storage.ImageDir == "" {
		return fmt.Errorf("image directory is required")
	}

	return nil
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// Validate validates the logger configuration.
func (c *LoggerConfig) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
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

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
