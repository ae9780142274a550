package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"PORT"`
	Env              string        `mapstructure:"ENV"`
	BackendURL       string        `mapstructure:"BACKEND_URL"`
	BackendAnonKey   string        `mapstructure:"BACKEND_ANON_KEY"`
	BackendJWTSecret string        `mapstructure:"BACKEND_JWT_SECRET"`
	GeminiAPIKey     string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string        `mapstructure:"GEMINI_MODEL"`
	StorageBucket    string        `mapstructure:"STORAGE_BUCKET"`
	MaxUploadSize    int64         `mapstructure:"MAX_UPLOAD_SIZE"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	GatewayAttempts  int           `mapstructure:"GATEWAY_ATTEMPTS"`
	GatewayBaseDelay time.Duration `mapstructure:"GATEWAY_BASE_DELAY"`
	AIRateLimit      int           `mapstructure:"AI_RATE_LIMIT"`
	AIRateWindow     time.Duration `mapstructure:"AI_RATE_WINDOW"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("STORAGE_BUCKET", "medical-documents")
	v.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("GATEWAY_ATTEMPTS", 3)
	v.SetDefault("GATEWAY_BASE_DELAY", "1s")
	v.SetDefault("AI_RATE_LIMIT", 10)
	v.SetDefault("AI_RATE_WINDOW", "60s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("BACKEND_URL")
	v.BindEnv("BACKEND_ANON_KEY")
	v.BindEnv("BACKEND_JWT_SECRET")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("STORAGE_BUCKET")
	v.BindEnv("MAX_UPLOAD_SIZE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("GATEWAY_ATTEMPTS")
	v.BindEnv("GATEWAY_BASE_DELAY")
	v.BindEnv("AI_RATE_LIMIT")
	v.BindEnv("AI_RATE_WINDOW")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}
	if cfg.BackendAnonKey == "" {
		return nil, fmt.Errorf("BACKEND_ANON_KEY is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AIEnabled reports whether the generative-AI credential is configured.
// Without it the AI endpoints return a configuration error instead of
// failing startup.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Validate checks that the configuration is safe to run. BACKEND_URL must
// parse as an absolute http(s) URL, and the retry/rate-limit knobs must be
// positive.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("BACKEND_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("BACKEND_URL is missing a host: %q", c.BackendURL)
	}

	if c.GatewayAttempts < 1 {
		return fmt.Errorf("GATEWAY_ATTEMPTS must be at least 1, got %d", c.GatewayAttempts)
	}
	if c.GatewayBaseDelay <= 0 {
		return fmt.Errorf("GATEWAY_BASE_DELAY must be positive, got %s", c.GatewayBaseDelay)
	}
	if c.AIRateLimit < 1 {
		return fmt.Errorf("AI_RATE_LIMIT must be at least 1, got %d", c.AIRateLimit)
	}
	if c.AIRateWindow <= 0 {
		return fmt.Errorf("AI_RATE_WINDOW must be positive, got %s", c.AIRateWindow)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize)
	}

	return nil
}
