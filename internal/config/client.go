package config

import (
	"fmt"
	"net/url"
	"time"

	"infinium/internal/model"
)

// ClientConfig holds the terminal dashboard configuration.
type ClientConfig struct {
	APIURL         string
	APIKey         string // sent as X-API-Key when set
	UserID         string
	TimeoutSeconds int
	SeedFile       string // empty uses the embedded dataset
	PrefsFile      string
	CalorieMin     int
	CalorieMax     int
	Logger         LoggerConfig
}

// Timeout returns the HTTP timeout used by the API client.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadClient loads the dashboard configuration from environment variables.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		APIURL:         getEnv("DASHBOARD_API_URL", "http://localhost:3000"),
		APIKey:         getEnv("DASHBOARD_API_KEY", ""),
		UserID:         getEnv("DASHBOARD_USER_ID", "demo-user"),
		TimeoutSeconds: getEnvAsInt("DASHBOARD_TIMEOUT_SECONDS", 30),
		SeedFile:       getEnv("DASHBOARD_SEED_FILE", ""),
		PrefsFile:      getEnv("DASHBOARD_PREFS_FILE", ".infinium-prefs.yaml"),
		CalorieMin:     getEnvAsInt("DASHBOARD_CALORIE_MIN", model.MinCalorieGoal),
		CalorieMax:     getEnvAsInt("DASHBOARD_CALORIE_MAX", model.MaxCalorieGoal),
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the dashboard configuration.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL: %q", c.APIURL)
	}

	if c.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout must be at least 1 second")
	}

	if c.CalorieMin < 1 || c.CalorieMin > c.CalorieMax {
		return fmt.Errorf("invalid calorie range: %d..%d", c.CalorieMin, c.CalorieMax)
	}

	if c.PrefsFile == "" {
		return fmt.Errorf("preferences file is required")
	}

	return c.Logger.Validate()
}
