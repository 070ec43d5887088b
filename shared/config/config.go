package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	AI         AIConfig         `yaml:"ai"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	// Schedule is a standard 5-field cron spec for background refreshes. Empty disables them.
	Schedule string `yaml:"schedule"`
}

type ServerConfig struct {
	Port        int      `yaml:"port" validate:"required|int|min:1|max:65535"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// YouTubeConfig holds the Data API key. It may be empty; snapshot refreshes are then rejected.
type YouTubeConfig struct {
	APIKey string `yaml:"api_key"`
}

// AIConfig holds the provider keys. Both may be empty: without a Gemini key
// the generate endpoint tells the client to use local mode.
type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model" validate:"required"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model" validate:"required"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend" validate:"required|in:memory,file,redis"`
	Dir      string `yaml:"dir"`
	RedisURL string `yaml:"redis_url"`
	MemoryMB int    `yaml:"memory_mb"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error"`
}

type MonitoringConfig struct {
	MetricsDisabled bool `yaml:"metrics_disabled"`
}

// Load reads .env, an optional YAML file named by CONFIG_FILE (default config.yaml),
// then lets environment variables override what the file set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.YouTube.APIKey, "YOUTUBE_API_KEY")
	setString(&c.AI.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.AI.GeminiModel, "GEMINI_MODEL")
	setString(&c.AI.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.AI.OpenAIModel, "OPENAI_MODEL")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Storage.Backend, "STORE_BACKEND")
	setString(&c.Storage.Dir, "STORE_DIR")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.Schedule, "REFRESH_SCHEDULE")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("METRICS_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_DISABLED %q: %w", v, err)
		}
		c.Monitoring.MetricsDisabled = disabled
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.AI.GeminiModel == "" {
		c.AI.GeminiModel = "gemini-1.5-flash"
	}
	if c.AI.OpenAIModel == "" {
		c.AI.OpenAIModel = "gpt-5-mini"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
}

func (c *Config) validate() error {
	for _, section := range []any{&c.Server, &c.AI, &c.Storage, &c.Logging} {
		v := validate.Struct(section)
		if !v.Validate() {
			return errors.New(v.Errors.One())
		}
	}

	if c.Storage.Backend == "redis" && c.Storage.RedisURL == "" {
		return fmt.Errorf("Redis URL is required for the redis store backend (set REDIS_URL or storage.redis_url)")
	}
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", c.Schedule, err)
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
