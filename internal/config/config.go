package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig `json:"server"`

	Mongo MongoConfig `json:"mongo"`

	// Asset store (minio / s3 compatible) for video, thumbnail and avatar files
	Asset AssetConfig `json:"asset"`

	Auth AuthConfig `json:"auth"`

	Logging LoggingConfig `json:"logging"`
}

type ServerConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

type MongoConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

type AssetConfig struct {
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	UseSSL          bool   `json:"use_ssl"`
	PublicBaseURL   string `json:"public_base_url"`
}

type AuthConfig struct {
	AccessTokenSecret  string        `json:"-"`
	RefreshTokenSecret string        `json:"-"`
	AccessTokenTTL     time.Duration `json:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `json:"refresh_token_ttl"`
}

type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
	Output string `json:"output"` // stdout, stderr, or file path
}

// Load builds the config from environment variables with development
// defaults, the env having usually been primed by godotenv in main.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Mongo: MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "vidtube"),
		},
		Asset: AssetConfig{
			Endpoint:        getEnvOrDefault("ASSET_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnvOrDefault("ASSET_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnvOrDefault("ASSET_SECRET_KEY", "minioadmin"),
			Bucket:          getEnvOrDefault("ASSET_BUCKET", "vidtube-media"),
			Region:          getEnvOrDefault("ASSET_REGION", ""),
			UseSSL:          getEnvOrDefault("ASSET_USE_SSL", "false") == "true",
			PublicBaseURL:   getEnvOrDefault("ASSET_PUBLIC_BASE_URL", ""),
		},
		Auth: AuthConfig{
			AccessTokenSecret:  getEnvOrDefault("ACCESS_TOKEN_SECRET", "dev-access-secret"),
			RefreshTokenSecret: getEnvOrDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
			AccessTokenTTL:     time.Duration(getEnvIntOrDefault("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
			RefreshTokenTTL:    time.Duration(getEnvIntOrDefault("REFRESH_TOKEN_TTL_HOURS", 240)) * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			Output: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
}

// URI builds the mongodb connection string, with or without credentials.
func (mc MongoConfig) URI() string {
	if mc.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			mc.Username, mc.Password, mc.Host, mc.Port, mc.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", mc.Host, mc.Port, mc.Database)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
