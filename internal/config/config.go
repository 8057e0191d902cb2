package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RateLimitMax    int           // env: RATE_LIMIT_MAX, default: 100 requests
	RateLimitWindow time.Duration // env: RATE_LIMIT_WINDOW, default: 1m
	RedisURL        string        // env: REDIS_URL, limiter storage; in-memory when empty

	// Logging
	LogLevel      string // env: LOG_LEVEL, default: "info"
	LogFile       string // env: LOG_FILE, default: "" (stderr only)
	LogMaxSizeMB  int    // env: LOG_MAX_SIZE_MB, default: 100
	LogMaxBackups int    // env: LOG_MAX_BACKUPS, default: 3
	LogMaxAgeDays int    // env: LOG_MAX_AGE_DAYS, default: 28

	// Query engine
	EngineInterpreter    string        // env: ENGINE_INTERPRETER, default: "python3"
	EngineScript         string        // env: ENGINE_SCRIPT, default: "accumulator.py"
	EngineQueryFlag      string        // env: ENGINE_QUERY_FLAG, default: "-q"
	EngineIndexDir       string        // env: ENGINE_INDEX_DIR, passed to the engine as -d when set
	EngineArgs           []string      // env: ENGINE_ARGS, shell-style word list
	EngineEnv            []string      // YAML only, KEY=VALUE pairs added to the engine environment
	EngineWorkDir        string        // env: ENGINE_WORK_DIR, default: "" (current directory)
	EngineTimeout        time.Duration // env: ENGINE_TIMEOUT, default: 0 (none)
	EngineMaxOutputBytes int64         // env: ENGINE_MAX_OUTPUT_BYTES, default: 0 (unlimited)
	EngineMaxConcurrent  int64         // env: ENGINE_MAX_CONCURRENT, default: 0 (unlimited)
	EngineRequiredFiles  []string      // env: ENGINE_REQUIRED_FILES, comma-separated, relative to the index dir
	EngineCheckInterval  time.Duration // env: ENGINE_CHECK_INTERVAL, default: 30s

	// Query input
	MaxQueryBytes int // env: MAX_QUERY_BYTES, default: 131071 (largest single argv entry on Linux)

	// Result documents linked from engine output
	FilesDir string // env: FILES_DIR, default: "./files"

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "QuerySearch"
	SiteTagline string // env: SITE_TAGLINE, default: "Search the document index"
	SiteFooter  string // env: SITE_FOOTER, default: "QuerySearch"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		RedisURL:        getEnv("REDIS_URL", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),

		EngineInterpreter:    getEnv("ENGINE_INTERPRETER", "python3"),
		EngineScript:         getEnv("ENGINE_SCRIPT", "accumulator.py"),
		EngineQueryFlag:      getEnv("ENGINE_QUERY_FLAG", "-q"),
		EngineIndexDir:       getEnv("ENGINE_INDEX_DIR", ""),
		EngineArgs:           getEnvWords("ENGINE_ARGS"),
		EngineWorkDir:        getEnv("ENGINE_WORK_DIR", ""),
		EngineTimeout:        getEnvDuration("ENGINE_TIMEOUT", 0),
		EngineMaxOutputBytes: int64(getEnvInt("ENGINE_MAX_OUTPUT_BYTES", 0)),
		EngineMaxConcurrent:  int64(getEnvInt("ENGINE_MAX_CONCURRENT", 0)),
		EngineRequiredFiles:  getEnvList("ENGINE_REQUIRED_FILES"),
		EngineCheckInterval:  getEnvDuration("ENGINE_CHECK_INTERVAL", 30*time.Second),

		MaxQueryBytes: getEnvInt("MAX_QUERY_BYTES", 131071),
		FilesDir:      getEnv("FILES_DIR", "./files"),

		SiteTitle:   getEnv("SITE_TITLE", "QuerySearch"),
		SiteTagline: getEnv("SITE_TAGLINE", "Search the document index"),
		SiteFooter:  getEnv("SITE_FOOTER", "QuerySearch"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvWords splits a variable using shell word rules, so arguments may
// carry quoted spaces. Unparseable values are ignored.
func getEnvWords(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	words, err := shellquote.Split(value)
	if err != nil {
		return nil
	}
	return words
}

// isEnvSet reports whether key was given a non-empty value in the environment.
func isEnvSet(key string) bool {
	return os.Getenv(key) != ""
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}
