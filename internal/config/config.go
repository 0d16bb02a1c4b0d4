package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Krushna-ai/GDVG/internal/infrastructure/database"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds the whole application configuration, populated from
// environment variables (optionally seeded from .env by main).
type Config struct {
	App       AppConfig
	Database  *database.DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Site      SiteConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
	Worker    WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int

	// MemoryCacheMB sizes the in-process cache used when Host is empty.
	MemoryCacheMB int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// SiteConfig describes the public frontend the canonical URLs point at.
type SiteConfig struct {
	BaseURL         string
	SitemapCacheTTL time.Duration
}

type HTTPConfig struct {
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// RateLimitConfig applies per client IP on public routes. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// AdminConfig optionally ensures one admin account exists at startup.
type AdminConfig struct {
	BootstrapUsername string
	BootstrapPassword string
}

// WorkerConfig drives cmd/worker. The worker needs REDIS_HOST.
type WorkerConfig struct {
	Concurrency            int
	SitemapRefreshInterval time.Duration
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Global Drama Verse Guide API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),

			MemoryCacheMB: getEnvInt("MEMORY_CACHE_MB", 32),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_TOKEN_EXPIRY", 7*24*time.Hour),
		},
		Site: SiteConfig{
			BaseURL:         strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:3000"), "/"),
			SitemapCacheTTL: getEnvDuration("SITEMAP_CACHE_TTL", time.Hour),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			ReadTimeout:    getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst: getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Admin: AdminConfig{
			BootstrapUsername: getEnv("ADMIN_BOOTSTRAP_USERNAME", ""),
			BootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
		},
		Worker: WorkerConfig{
			Concurrency:            getEnvInt("WORKER_CONCURRENCY", 5),
			SitemapRefreshInterval: getEnvDuration("SITEMAP_REFRESH_INTERVAL", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if (c.Admin.BootstrapUsername == "") != (c.Admin.BootstrapPassword == "") {
		return fmt.Errorf("ADMIN_BOOTSTRAP_USERNAME and ADMIN_BOOTSTRAP_PASSWORD must be set together")
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
