package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration shared by the console and site binaries
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Session   SessionConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
	Site      SiteConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig points at the TaskMate REST API that both surfaces consume.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// StorePath is the file used by the default file-backed session store.
	StorePath string
	// DevTTL is the local expiry window used when a token carries no exp claim,
	// and the lifetime of development tokens.
	DevTTL time.Duration
	// DevSecret signs development tokens (never consulted in production).
	DevSecret string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type SiteConfig struct {
	// BaseURL is the public origin of the marketing site, used for the
	// sitemap and hreflang alternate links.
	BaseURL       string
	DefaultLocale string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_TIMEOUT", 10)
	viper.SetDefault("SESSION_STORE_PATH", "panel-session.json")
	viper.SetDefault("SESSION_DEV_TTL_HOURS", 12)
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("SITE_BASE_URL", "https://taskmate.example.com")
	viper.SetDefault("SITE_DEFAULT_LOCALE", "en")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT")) * time.Second,
		},
		Session: SessionConfig{
			StorePath: viper.GetString("SESSION_STORE_PATH"),
			DevTTL:    time.Duration(viper.GetInt("SESSION_DEV_TTL_HOURS")) * time.Hour,
			DevSecret: os.Getenv("SESSION_DEV_SECRET"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Site: SiteConfig{
			BaseURL:       viper.GetString("SITE_BASE_URL"),
			DefaultLocale: viper.GetString("SITE_DEFAULT_LOCALE"),
		},
	}

	// Basic validation
	if cfg.IsProduction() && cfg.Session.DevSecret != "" {
		log.Println("WARNING: SESSION_DEV_SECRET set in production; it will be ignored")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production semantics.
// Every development-only bypass (synthetic login tokens, simulated write
// success) is gated on this.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
