package config

import (
	jwtPkg "ProjectBudget/pkg/jwt"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	AppPort   string
	AppEnv    string
	BodyLimit int

	// Database
	DBDSN             string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAutoMigrate     bool

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Auth
	JWTAccessTokenSecret string
	AccessTokenTTL       time.Duration

	// Rate limiting
	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitIdleTTL time.Duration

	// Cache
	BudgetCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		AppPort:   getEnv("APP_PORT", "3000"),
		AppEnv:    getEnv("APP_ENV", "development"),
		BodyLimit: getEnvInt("APP_BODY_LIMIT", 1024*1024),

		DBDSN:             getEnv("DB_DSN", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "budget"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBAutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTAccessTokenSecret: getEnv(jwtPkg.AccessTokenSecretKey, ""),
		AccessTokenTTL:       getEnvDuration("JWT_ACCESS_TOKEN_TTL", time.Hour),

		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 100),
		RateLimitIdleTTL: getEnvDuration("RATE_LIMIT_IDLE_TTL", 10*time.Minute),

		BudgetCacheTTL: getEnvDuration("BUDGET_CACHE_TTL", 10*time.Minute),
	}
}

// DatabaseURL returns DB_DSN when set, otherwise a postgres URL built from the DB_* parts.
func (c *Config) DatabaseURL() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	u.RawQuery = url.Values{"sslmode": []string{c.DBSSLMode}}.Encode()

	return u.String()
}

// Validate validates the configuration and returns every problem found at once
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.AppPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.AppPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.BodyLimit < 1024 {
		problems = append(problems, fmt.Sprintf("invalid APP_BODY_LIMIT %d: must be at least 1024 bytes", c.BodyLimit))
	}

	if c.DBDSN == "" {
		if c.DBHost == "" {
			problems = append(problems, "DB_HOST is required when DB_DSN is not set")
		}
		if c.DBName == "" {
			problems = append(problems, "DB_NAME is required when DB_DSN is not set")
		}
		if c.DBUser == "" {
			problems = append(problems, "DB_USER is required when DB_DSN is not set")
		}
	}
	if c.DBMaxOpenConns < 1 {
		problems = append(problems, fmt.Sprintf("invalid DB_MAX_OPEN_CONNS %d: must be at least 1", c.DBMaxOpenConns))
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		problems = append(problems, fmt.Sprintf("invalid DB_MAX_IDLE_CONNS %d: must be between 0 and DB_MAX_OPEN_CONNS", c.DBMaxIdleConns))
	}

	if c.RedisAddr == "" {
		problems = append(problems, "REDIS_ADDR cannot be empty")
	}
	if c.RedisDB < 0 {
		problems = append(problems, fmt.Sprintf("invalid REDIS_DB %d: must not be negative", c.RedisDB))
	}

	if c.JWTAccessTokenSecret == "" {
		problems = append(problems, jwtPkg.AccessTokenSecretKey+" is required")
	}
	if c.AccessTokenTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid access token ttl %v: must be at least 1 minute", c.AccessTokenTTL))
	}

	if c.RateLimitRPS <= 0 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_RPS %v: must be positive", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_BURST %d: must be at least 1", c.RateLimitBurst))
	}

	if c.RateLimitIdleTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_IDLE_TTL %v: must be at least 1 minute", c.RateLimitIdleTTL))
	}

	if c.BudgetCacheTTL < time.Second {
		problems = append(problems, fmt.Sprintf("invalid budget cache ttl %v: must be at least 1 second", c.BudgetCacheTTL))
	} else if c.BudgetCacheTTL > 24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid budget cache ttl %v: must be at most 24 hours", c.BudgetCacheTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
