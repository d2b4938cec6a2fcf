// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LLMConfig configures the multi-endpoint model backend. Endpoints are tried
// in the order configured; the first entry is the preferred model tier.
type LLMConfig struct {
	Endpoints      []EndpointConfig `mapstructure:"endpoints"`
	RequestTimeout int              `mapstructure:"request_timeout"` // seconds
	MaxRetries     int              `mapstructure:"max_retries"`     // per endpoint
	MaxTokens      int              `mapstructure:"max_tokens"`
	Temperature    float64          `mapstructure:"temperature"`
}

// EndpointConfig identifies one model tier backend.
type EndpointConfig struct {
	Model   string `mapstructure:"model"` // e.g. "llama-3.1-70b"
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig configures the recommendation result cache.
type CacheConfig struct {
	Backend       string      `mapstructure:"backend"`        // "memory" or "redis"
	DurationHours int         `mapstructure:"duration_hours"` // entry TTL
	Redis         RedisConfig `mapstructure:"redis"`
}

// TTL returns the configured cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.DurationHours) * time.Hour
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SourcesConfig points at the upstream profile scraper services.
type SourcesConfig struct {
	GuestBaseURL string `mapstructure:"guest_base_url"`
	HostBaseURL  string `mapstructure:"host_base_url"`
	Timeout      int    `mapstructure:"timeout"` // seconds
}

// AnalysisConfig bounds the feature set handed to the scoring prompt.
type AnalysisConfig struct {
	MaxRecentVideos     int `mapstructure:"max_recent_videos"`
	MaxRecentActivities int `mapstructure:"max_recent_activities"`
	MaxTopics           int `mapstructure:"max_topics"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
