package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	GenAI    GenAIConfig    `mapstructure:"genai"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Dash     DashConfig     `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Port             int      `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout      int      `mapstructure:"read_timeout_seconds" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout     int      `mapstructure:"write_timeout_seconds" envconfig:"SERVER_WRITE_TIMEOUT"`
	RateLimitPerSec  float64  `mapstructure:"rate_limit_per_second" envconfig:"SERVER_RATE_LIMIT"`
	RateLimitBurst   int      `mapstructure:"rate_limit_burst" envconfig:"SERVER_RATE_BURST"`
	ReviewRatePerMin float64  `mapstructure:"review_rate_per_minute" envconfig:"REVIEW_RATE_LIMIT"`
	ReviewRateBurst  int      `mapstructure:"review_rate_burst" envconfig:"REVIEW_RATE_BURST"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type GenAIConfig struct {
	APIKey         string   `mapstructure:"api_key" envconfig:"GOOGLE_AI_API_KEY"`
	PrimaryModel   string   `mapstructure:"primary_model" envconfig:"GOOGLE_AI_PRIMARY_MODEL"`
	FallbackModels []string `mapstructure:"fallback_models"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
	NotifyTo string `mapstructure:"notify_to" envconfig:"SMTP_NOTIFY_TO"`
}

type DashConfig struct {
	PageSize int `mapstructure:"page_size" envconfig:"DASHBOARD_PAGE_SIZE"`
}

// Enabled reports whether outgoing notification mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.NotifyTo != ""
}

func (c JWTConfig) Expiry() time.Duration {
	hours := c.ExpiryHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// LoadConfig reads config.yml then applies environment overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitPerSec == 0 {
		c.Server.RateLimitPerSec = 50
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 100
	}
	if c.Server.ReviewRatePerMin == 0 {
		c.Server.ReviewRatePerMin = 10
	}
	if c.Server.ReviewRateBurst == 0 {
		c.Server.ReviewRateBurst = 3
	}
	if c.GenAI.PrimaryModel == "" {
		c.GenAI.PrimaryModel = "gemini-2.5-flash"
	}
	if len(c.GenAI.FallbackModels) == 0 {
		c.GenAI.FallbackModels = []string{
			"gemini-2.5-pro",
			"gemini-2.0-flash",
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-pro",
		}
	}
	if c.Dash.PageSize == 0 {
		c.Dash.PageSize = 50
	}
}
