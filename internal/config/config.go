package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Analytics  AnalyticsConfig
	Session    SessionConfig
	Redis      RedisConfig
	PostgreSQL PostgreSQLConfig
	Ranking    RankingConfig
	RateLimit  RateLimitConfig
	Logging    LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// AnalyticsConfig holds the remote analytics backend configuration
type AnalyticsConfig struct {
	BaseURL            string // e.g. http://localhost:8000/api
	Timeout            int    // seconds
	BreakerMaxFailures int    // consecutive failures before the circuit opens
	BreakerOpenTimeout int    // seconds the circuit stays open
}

// SessionConfig holds conversation session configuration
type SessionConfig struct {
	TTLMinutes  int // idle sessions older than this are discarded
	MaxSessions int
}

// RedisConfig holds the locality vocabulary cache configuration
type RedisConfig struct {
	Enabled       bool
	Addr          string
	Password      string
	DB            int
	PoolSize      int
	Prefix        string
	VocabularyTTL int // seconds
}

// PostgreSQLConfig holds the turn audit log database configuration
type PostgreSQLConfig struct {
	Enabled            bool
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// RankingConfig holds investment ranking weights
type RankingConfig struct {
	WeightGrowth float64
	WeightDemand float64
	WeightRisk   float64
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	dsn := getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", "")))

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Analytics: AnalyticsConfig{
			BaseURL:            strings.TrimRight(getEnv("ANALYTICS_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:            getEnvAsInt("ANALYTICS_TIMEOUT", 30),
			BreakerMaxFailures: getEnvAsInt("ANALYTICS_BREAKER_MAX_FAILURES", 5),
			BreakerOpenTimeout: getEnvAsInt("ANALYTICS_BREAKER_OPEN_TIMEOUT", 30),
		},
		Session: SessionConfig{
			TTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
			MaxSessions: getEnvAsInt("SESSION_MAX_SESSIONS", 10000),
		},
		Redis: RedisConfig{
			Enabled:       getEnvAsBool("REDIS_ENABLED", getEnv("REDIS_ADDR", "") != ""),
			Addr:          getEnv("REDIS_ADDR", "localhost:6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvAsInt("REDIS_DB", 0),
			PoolSize:      getEnvAsInt("REDIS_POOL_SIZE", 10),
			Prefix:        getEnv("REDIS_PREFIX", "estatechat:"),
			VocabularyTTL: getEnvAsInt("VOCABULARY_CACHE_TTL", 300),
		},
		PostgreSQL: PostgreSQLConfig{
			Enabled:            getEnvAsBool("PG_ENABLED", dsn != ""),
			DSN:                dsn,
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "estatechat"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Ranking: RankingConfig{
			WeightGrowth: getEnvAsFloat("RANK_WEIGHT_GROWTH", 0.4),
			WeightDemand: getEnvAsFloat("RANK_WEIGHT_DEMAND", 0.4),
			WeightRisk:   getEnvAsFloat("RANK_WEIGHT_RISK", 0.2),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("ANALYTICS_BASE_URL must not be empty")
	}
	if c.Analytics.Timeout <= 0 {
		return fmt.Errorf("ANALYTICS_TIMEOUT must be positive, got %d", c.Analytics.Timeout)
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.Session.TTLMinutes)
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %f", c.RateLimit.RequestsPerSecond)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// AnalyticsTimeout returns the backend request timeout
func (c *Config) AnalyticsTimeout() time.Duration {
	return time.Duration(c.Analytics.Timeout) * time.Second
}

// SessionTTL returns the idle lifetime of a session
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// VocabularyTTL returns how long a fetched locality list stays cached
func (c *Config) VocabularyTTL() time.Duration {
	return time.Duration(c.Redis.VocabularyTTL) * time.Second
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
