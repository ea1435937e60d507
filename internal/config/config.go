package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Sources   SourcesConfig   `yaml:"sources"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings for the REST API.
// An empty AllowedOrigins disables CORS handling.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects and configures the entry store.
// DSN is a PostgreSQL connection string for the postgres driver and a file
// path (or ":memory:") for the sqlite driver.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds access token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lingo"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SourcesConfig configures the dictionary source adapters and the aggregator.
type SourcesConfig struct {
	Priority       []string      `yaml:"priority"        env:"SOURCES_PRIORITY"        env-separator:"," env-default:"cambridge,oxford,webster,collins,longman,freedict"`
	Timeout        time.Duration `yaml:"timeout"         env:"SOURCES_TIMEOUT"         env-default:"5s"`
	UserAgent      string        `yaml:"user_agent"      env:"SOURCES_USER_AGENT"      env-default:"Mozilla/5.0 (compatible; lingo/1.0)"`
	Parallel       bool          `yaml:"parallel"        env:"SOURCES_PARALLEL"        env-default:"false"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"SOURCES_MAX_CONCURRENCY" env-default:"4"`
	CambridgeURL   string        `yaml:"cambridge_url"   env:"SOURCES_CAMBRIDGE_URL"   env-default:"https://dictionary.cambridge.org/dictionary/english"`
	WebsterURL     string        `yaml:"webster_url"     env:"SOURCES_WEBSTER_URL"     env-default:"https://www.merriam-webster.com/dictionary"`
	FreeDictURL    string        `yaml:"freedict_url"    env:"SOURCES_FREEDICT_URL"    env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
}

// Fallback providers.
const (
	FallbackNone      = "none"
	FallbackAnthropic = "anthropic"
	FallbackGemini    = "gemini"
)

// FallbackConfig configures the generative gap filler.
type FallbackConfig struct {
	Provider  string        `yaml:"provider"   env:"FALLBACK_PROVIDER"   env-default:"none"`
	APIKey    string        `yaml:"api_key"    env:"FALLBACK_API_KEY"`
	Model     string        `yaml:"model"      env:"FALLBACK_MODEL"`
	MaxTokens int64         `yaml:"max_tokens" env:"FALLBACK_MAX_TOKENS" env-default:"512"`
	Timeout   time.Duration `yaml:"timeout"    env:"FALLBACK_TIMEOUT"    env-default:"20s"`
}

// Enabled reports whether a generative provider is configured.
func (c FallbackConfig) Enabled() bool {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	return p != "" && p != FallbackNone
}

// CacheConfig configures the optional Redis lookup cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"CACHE_ENABLED"  env-default:"false"`
	Addr     string        `yaml:"addr"     env:"CACHE_ADDR"     env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB       int           `yaml:"db"       env:"CACHE_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"168h"`
}

// RateLimitConfig configures per-IP request limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}
