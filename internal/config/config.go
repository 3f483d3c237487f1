package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"PortfolioAnalyzer/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string        `yaml:"provider" default:"alphavantage" validate:"oneof=alphavantage yahoo mock"`
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key" validate:"required_if=Provider alphavantage"`
		Timeout  time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Cache struct {
		Backend    string        `yaml:"backend" default:"none" validate:"oneof=none memory redis"`
		QuoteTTL   time.Duration `yaml:"quote_ttl" default:"1m"`
		HistoryTTL time.Duration `yaml:"history_ttl" default:"6h"`
		MaxEntries int           `yaml:"max_entries" default:"1000" validate:"gte=1"`
		Redis      struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"portfolio"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron" default:"0 0 22 * * 1-5" validate:"required"`
	} `yaml:"schedule"`
	Session struct {
		StateFile string `yaml:"state_file" default:"data/session.json"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/portfolio.db"`
	} `yaml:"database"`
	HTTP struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"http"`
	Log   logging.Config `yaml:"log"`
	Proxy string         `yaml:"proxy"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"TELEGRAM_BOT_TOKEN":   &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":     &c.Telegram.ChatID,
		"ALPHAVANTAGE_API_KEY": &c.DataSource.APIKey,
		"DATA_PROVIDER":        &c.DataSource.Provider,
		"HTTPS_PROXY":          &c.Proxy,
		"SQLITE_PATH":          &c.Database.SQLitePath,
		"REDIS_ADDR":           &c.Cache.Redis.Addr,
		"CRON_REFRESH":         &c.Schedule.RefreshCron,
		"LOG_LEVEL":            &c.Log.Level,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.HTTP.Port = port
	}
	// A redis address implies the redis backend unless one was chosen.
	if c.Cache.Redis.Addr != "" && c.Cache.Backend == "none" {
		c.Cache.Backend = "redis"
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("invalid config: cache.redis.addr is required for the redis backend")
	}
	return nil
}

// TelegramEnabled reports whether both bot token and chat are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
