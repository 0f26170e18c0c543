package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingMongoURI = errors.New("environment variable MONGODB_URI is required")

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	ConnectAttempts int
}

// RateLimitConfig controls the per-IP token bucket in front of /ready.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables and an optional
// .env file (ENV_FILE, default ".env"). Existing environment variables win.
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "edutask")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MONGODB_CONNECT_ATTEMPTS", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:             viper.GetString("MONGODB_URI"),
			Database:        viper.GetString("MONGODB_DATABASE"),
			Timeout:         time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
			ConnectAttempts: viper.GetInt("MONGODB_CONNECT_ATTEMPTS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if cfg.MongoDB.URI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.MongoDB.ConnectAttempts < 1 {
		cfg.MongoDB.ConnectAttempts = 1
	}
	return cfg, nil
}

// Addr is the listen address of the ops server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
