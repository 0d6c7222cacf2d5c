package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Storage
	Store       string // "postgres" | "memory"
	DatabaseURL string // postgres DSN, required when Store == "postgres"
	AutoMigrate bool   // run migrations on serve startup

	// Auth
	JWTSecret  string        // HS256 signing key, required to serve
	TokenTTL   time.Duration // lifetime of issued tokens (default: 24h)
	AuthRate   int           // login/register requests per minute per client
	AuthBurst  int           // login/register burst per client
	CORSOrigin []string      // origins allowed to POST /bookmarks/add (default: *)

	// Redis (optional, empty RedisAddr disables the search cache and
	// keeps revoked tokens in process)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	SearchCacheTTL      time.Duration // lifetime of a cached search (default: 10m)

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict the probe endpoints to these networks
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MARKS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKS_PRETTY_LOG", false),

		// Storage
		Store:       strings.ToLower(getenv("MARKS_STORE", StorePostgres)),
		AutoMigrate: mustBool("MARKS_AUTO_MIGRATE", true),

		// Auth
		JWTSecret:  getenv("MARKS_JWT_SECRET", ""),
		TokenTTL:   mustDuration("MARKS_TOKEN_TTL", 24*time.Hour),
		AuthRate:   getenvInt("MARKS_AUTH_RATE", 10),
		AuthBurst:  getenvInt("MARKS_AUTH_BURST", 5),
		CORSOrigin: splitAndTrim(getenv("MARKS_CORS_ORIGINS", "*")),

		// Redis settings
		RedisAddr:           getenv("MARKS_REDIS_ADDR", ""),
		RedisUser:           getenv("MARKS_REDIS_USERNAME", ""),
		RedisPassword:       getenv("MARKS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MARKS_REDIS_DB", 0),
		RedisDT:             mustDuration("MARKS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("MARKS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("MARKS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("MARKS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("MARKS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("MARKS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("MARKS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("MARKS_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("MARKS_REDIS_WARN_THRESHOLD", 3),
		SearchCacheTTL:      mustDuration("MARKS_SEARCH_CACHE_TTL", 10*time.Minute),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("MARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("MARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("MARKS_TRUST_PROXY", false),
	}

	switch cfg.Store {
	case StorePostgres:
		cfg.DatabaseURL = requireEnv("MARKS_DATABASE_URL")
	case StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: MARKS_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.Store))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.JWTSecret != "" {
		cp.JWTSecret = "***REDACTED***"
	}
	if cp.DatabaseURL != "" {
		cp.DatabaseURL = "***REDACTED***"
	}
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// ValidateServe checks the settings only the HTTP server needs.
func (c *Config) ValidateServe() error {
	if c.JWTSecret == "" {
		return errors.New("MARKS_JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("MARKS_JWT_SECRET must be at least 32 bytes")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("MARKS_TOKEN_TTL must be > 0, got %v", c.TokenTTL)
	}
	if c.AuthRate <= 0 || c.AuthBurst <= 0 {
		return fmt.Errorf("MARKS_AUTH_RATE and MARKS_AUTH_BURST must be > 0, got %d and %d", c.AuthRate, c.AuthBurst)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
