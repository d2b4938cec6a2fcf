// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like LLM_REQUEST_TIMEOUT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Zero is a valid explicit value for these, so they default through viper
	// (applied only when the key is absent) instead of applyDefaults.
	viper.SetDefault("llm.max_retries", 1)
	viper.SetDefault("llm.temperature", 0.7)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	// Try multiple paths (for running from different directories)
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Walk up directories looking for go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "podcast-guest-tracker"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if len(cfg.LLM.Endpoints) == 0 {
		if url := os.Getenv("LLAMA_70B_URL"); url != "" {
			cfg.LLM.Endpoints = append(cfg.LLM.Endpoints, EndpointConfig{Model: "llama-3.1-70b", BaseURL: url})
		}
		if url := os.Getenv("LLAMA_8B_URL"); url != "" {
			cfg.LLM.Endpoints = append(cfg.LLM.Endpoints, EndpointConfig{Model: "llama-3.1-8b", BaseURL: url})
		}
	}
	if cfg.LLM.RequestTimeout == 0 {
		cfg.LLM.RequestTimeout = 60
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.DurationHours == 0 {
		cfg.Cache.DurationHours = 24
	}
	if cfg.Cache.Redis.Address == "" {
		cfg.Cache.Redis.Address = "localhost:6379"
	}

	if cfg.Sources.Timeout == 0 {
		cfg.Sources.Timeout = 30
	}

	if cfg.Analysis.MaxRecentVideos == 0 {
		cfg.Analysis.MaxRecentVideos = 10
	}
	if cfg.Analysis.MaxRecentActivities == 0 {
		cfg.Analysis.MaxRecentActivities = 5
	}
	if cfg.Analysis.MaxTopics == 0 {
		cfg.Analysis.MaxTopics = 5
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8090"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if len(cfg.LLM.Endpoints) == 0 {
		return fmt.Errorf("llm: at least one endpoint is required")
	}
	for i, ep := range cfg.LLM.Endpoints {
		if ep.BaseURL == "" {
			return fmt.Errorf("llm: endpoint %d has no base_url", i)
		}
		if ep.Model == "" {
			return fmt.Errorf("llm: endpoint %d has no model identifier", i)
		}
	}

	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache: unknown backend %q", cfg.Cache.Backend)
	}
	if cfg.Cache.DurationHours < 0 {
		return fmt.Errorf("cache: duration_hours must not be negative")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm: temperature %v out of range", cfg.LLM.Temperature)
	}

	return nil
}
