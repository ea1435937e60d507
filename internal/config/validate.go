package config

import (
	"fmt"
	"strings"
)

// knownSources are the adapter names the registry can build.
var knownSources = map[string]struct{}{
	"cambridge": {}, "oxford": {}, "webster": {}, "collins": {}, "longman": {}, "freedict": {},
}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if err := c.Sources.validate(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}

	if err := c.Fallback.validate(); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when the cache is enabled")
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (s *SourcesConfig) validate() error {
	normalized := make([]string, 0, len(s.Priority))
	for _, name := range s.Priority {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := knownSources[name]; !ok {
			return fmt.Errorf("priority: unknown source %q", name)
		}
		normalized = append(normalized, name)
	}
	if len(normalized) == 0 {
		return fmt.Errorf("priority must name at least one source")
	}
	s.Priority = normalized

	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.Parallel && s.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be >= 1 (got %d)", s.MaxConcurrency)
	}
	return nil
}

func (f *FallbackConfig) validate() error {
	f.Provider = strings.ToLower(strings.TrimSpace(f.Provider))
	switch f.Provider {
	case "", FallbackNone:
		f.Provider = FallbackNone
		return nil
	case FallbackAnthropic, FallbackGemini:
	default:
		return fmt.Errorf("provider must be one of none, anthropic, gemini (got %q)", f.Provider)
	}

	if f.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", f.Provider)
	}
	if f.Model == "" {
		f.Model = defaultModel(f.Provider)
	}
	if f.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", f.MaxTokens)
	}
	return nil
}

func defaultModel(provider string) string {
	if provider == FallbackGemini {
		return "gemini-2.5-flash"
	}
	return "claude-3-5-haiku-latest"
}
