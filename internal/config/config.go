package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting for the server. It is built once at
// startup and passed by reference into the components that need it; nothing
// mutates it afterwards.
type Config struct {
	Host        string `mapstructure:"SERVER_HOST"`
	Port        string `mapstructure:"SERVER_PORT"`
	Env         string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DATABASE_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DATABASE_MIN_CONNS"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	AccessTTLMinutes   int    `mapstructure:"JWT_ACCESS_TTL_MINUTES"`
	RefreshTTLHours    int    `mapstructure:"JWT_REFRESH_TTL_HOURS"`
	OTPLength          int    `mapstructure:"OTP_LENGTH"`
	OTPExpiryMinutes   int    `mapstructure:"OTP_EXPIRY_MINUTES"`
	OTPCleanupSchedule string `mapstructure:"OTP_CLEANUP_SCHEDULE"`
	OTPRetentionHours  int    `mapstructure:"OTP_RETENTION_HOURS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`

	NotifyRetryDelayMS int `mapstructure:"NOTIFY_RETRY_DELAY_MS"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	RateLimitBurst     int `mapstructure:"RATE_LIMIT_BURST"`

	BodyLimit             string `mapstructure:"HTTP_BODY_LIMIT"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	CORSOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_MAX_CONNS", 20)
	v.SetDefault("DATABASE_MIN_CONNS", 5)
	v.SetDefault("JWT_ACCESS_TTL_MINUTES", 30)
	v.SetDefault("JWT_REFRESH_TTL_HOURS", 168)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_EXPIRY_MINUTES", 5)
	v.SetDefault("OTP_CLEANUP_SCHEDULE", "@hourly")
	v.SetDefault("OTP_RETENTION_HOURS", 24)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("NOTIFY_RETRY_DELAY_MS", 500)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("HTTP_BODY_LIMIT", "1MB")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("SERVER_HOST")
	v.BindEnv("SERVER_PORT")
	v.BindEnv("ENVIRONMENT")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DATABASE_MAX_CONNS")
	v.BindEnv("DATABASE_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ACCESS_TTL_MINUTES")
	v.BindEnv("JWT_REFRESH_TTL_HOURS")
	v.BindEnv("OTP_LENGTH")
	v.BindEnv("OTP_EXPIRY_MINUTES")
	v.BindEnv("OTP_CLEANUP_SCHEDULE")
	v.BindEnv("OTP_RETENTION_HOURS")
	v.BindEnv("SMTP_HOST")
	v.BindEnv("SMTP_PORT")
	v.BindEnv("SMTP_USERNAME")
	v.BindEnv("SMTP_PASSWORD")
	v.BindEnv("SMTP_FROM")
	v.BindEnv("TWILIO_ACCOUNT_SID")
	v.BindEnv("TWILIO_AUTH_TOKEN")
	v.BindEnv("TWILIO_FROM_NUMBER")
	v.BindEnv("NOTIFY_RETRY_DELAY_MS")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("REDIS_DB")
	v.BindEnv("RATE_LIMIT_PER_MINUTE")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("HTTP_BODY_LIMIT")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("CORS_ALLOWED_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ALLOWED_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AccessTTL returns the access token lifetime.
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLHours) * time.Hour
}

// OTPExpiry returns how long an issued one-time code stays valid.
func (c *Config) OTPExpiry() time.Duration {
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

// OTPRetention returns how long used or expired codes are kept before the
// cleanup job removes them.
func (c *Config) OTPRetention() time.Duration {
	return time.Duration(c.OTPRetentionHours) * time.Hour
}

// NotifyRetryDelay returns the pause between the first and second delivery
// attempt of an outbound notification.
func (c *Config) NotifyRetryDelay() time.Duration {
	return time.Duration(c.NotifyRetryDelayMS) * time.Millisecond
}

// RequestTimeout returns the per-request deadline enforced by the HTTP layer.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run. Outside development
// a database URL and a signing secret are mandatory; tokens must never be
// signed with an empty secret in production.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENVIRONMENT must be \"development\", \"staging\", or \"production\", got %q", c.Env)
	}
	if !c.IsDev() {
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when ENVIRONMENT=%s", c.Env)
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when ENVIRONMENT=%s", c.Env)
		}
	}
	if c.OTPLength < 4 || c.OTPLength > 10 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 10, got %d", c.OTPLength)
	}
	if c.OTPExpiryMinutes <= 0 {
		return fmt.Errorf("OTP_EXPIRY_MINUTES must be positive, got %d", c.OTPExpiryMinutes)
	}
	if c.AccessTTLMinutes <= 0 || c.RefreshTTLHours <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	return nil
}
