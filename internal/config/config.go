package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Server     ServerConfig
	OpenAI     OpenAIConfig
	Slack      SlackConfig
	Audit      AuditConfig
	SelfHosted bool
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// JWTConfig holds JWT authentication settings.
type JWTConfig struct {
	Secret    string //nolint:gosec // G117: JWT signing secret config
	AccessTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	RateLimit    int
}

// OpenAIConfig holds model enhancement settings. An empty APIKey disables
// enhancement; audits fall back to heuristic narratives.
type OpenAIConfig struct {
	APIKey string //nolint:gosec // G117: API credential config
	Model  string
}

// SlackConfig holds audit-completion notification settings.
type SlackConfig struct {
	BotToken string
	Channel  string
}

// AuditConfig holds audit pipeline settings.
type AuditConfig struct {
	CacheWindow time.Duration
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// sensitive values (JWT secret, DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("LEADAI_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("LEADAI_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("LEADAI_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("LEADAI_JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("LEADAI_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("LEADAI_SERVER_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimit, err := getEnvInt("LEADAI_SERVER_RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cacheWindow, err := getEnvDuration("LEADAI_AUDIT_CACHE_WINDOW", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	selfHosted, err := getEnvBool("LEADAI_SELF_HOSTED", false)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("LEADAI_CORS_ORIGINS", []string{"http://localhost:3000"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("LEADAI_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("LEADAI_DB_USER", "leadai"),
			Password: getEnv("LEADAI_DB_PASSWORD", ""),
			DBName:   getEnv("LEADAI_DB_NAME", "leadai_dev"),
			SSLMode:  getEnv("LEADAI_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("LEADAI_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("LEADAI_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:    getEnv("LEADAI_JWT_SECRET", ""),
			AccessTTL: accessTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("LEADAI_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
			RateLimit:    rateLimit,
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("LEADAI_OPENAI_API_KEY", ""),
			Model:  getEnv("LEADAI_OPENAI_MODEL", ""),
		},
		Slack: SlackConfig{
			BotToken: getEnv("LEADAI_SLACK_BOT_TOKEN", ""),
			Channel:  getEnv("LEADAI_SLACK_CHANNEL", "#audits"),
		},
		Audit: AuditConfig{
			CacheWindow: cacheWindow,
		},
		SelfHosted: selfHosted,
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("LEADAI_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("LEADAI_JWT_SECRET must be at least 32 characters")
	}

	// DB SSL mode warning for non-self-hosted deployments.
	if c.Database.SSLMode == "disable" && !c.SelfHosted {
		log.Warn().Msg("LEADAI_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.OpenAI.APIKey == "" {
		log.Warn().Msg("LEADAI_OPENAI_API_KEY not set; audits will use heuristic narratives only")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("LEADAI_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("LEADAI_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("LEADAI_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("LEADAI_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("LEADAI_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.RateLimit < 1 {
		return fmt.Errorf("LEADAI_SERVER_RATE_LIMIT must be >= 1, got %d", c.Server.RateLimit)
	}
	if c.Audit.CacheWindow <= 0 {
		return fmt.Errorf("LEADAI_AUDIT_CACHE_WINDOW must be positive, got %s", c.Audit.CacheWindow)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
