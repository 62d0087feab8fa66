package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// fal.ai queue API
	FalKey      string `mapstructure:"fal_key"`
	FalQueueURL string `mapstructure:"fal_queue_url"`

	// Webhook
	WebhookBaseURL string `mapstructure:"webhook_base_url"`
	WebhookToken   string `mapstructure:"webhook_token"`

	// Object storage (S3 compatible)
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3UseSSL    bool   `mapstructure:"s3_use_ssl"`
	BucketName  string `mapstructure:"bucket_name"`

	// Database
	DatabaseURL string `mapstructure:"database_url"`

	// Auth
	AuthJWTSecret string `mapstructure:"auth_jwt_secret"`

	// Server
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	}

	// AllKeys only reports keys registered via defaults or a config file,
	// so setDefaults must have named every key before this loop runs.
	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.FalKey == "" {
		return fmt.Errorf("FAL_KEY is required")
	}
	if c.WebhookBaseURL == "" {
		return fmt.Errorf("WEBHOOK_BASE_URL is required")
	}
	if c.S3AccessKey == "" || c.S3SecretKey == "" {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required")
	}
	if c.S3Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return nil
}

// setDefaults registers every configuration key. Keys viper has never seen
// are absent from AllKeys, so without a .env file the env binding in Load
// would skip them; required keys default to empty and rely on Validate.
func setDefaults() {
	viper.SetDefault("fal_key", "")
	viper.SetDefault("fal_queue_url", "https://queue.fal.run")
	viper.SetDefault("webhook_base_url", "")
	viper.SetDefault("webhook_token", "")
	viper.SetDefault("s3_access_key", "")
	viper.SetDefault("s3_secret_key", "")
	viper.SetDefault("s3_endpoint", "")
	viper.SetDefault("s3_use_ssl", true)
	viper.SetDefault("bucket_name", "training-archives")
	viper.SetDefault("database_url", "")
	viper.SetDefault("auth_jwt_secret", "")
	viper.SetDefault("port", "8080")
	viper.SetDefault("environment", "development")
}
