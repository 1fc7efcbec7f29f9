package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		HistoryDays int `yaml:"history_days"`
	} `yaml:"data_source"`
	Watchlist struct {
		StateFile string `yaml:"state_file"`
		Capacity  int    `yaml:"capacity"`
	} `yaml:"watchlist"`
	Schedule struct {
		CheckCron string `yaml:"check_cron"`
	} `yaml:"schedule"`
	Notify struct {
		Times         []string `yaml:"times"` // "HH:MM" entries
		WindowMinutes int      `yaml:"window_minutes"`
		Timezone      string   `yaml:"timezone"`
	} `yaml:"notify"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_CHECK"); v != "" {
		cfg.Schedule.CheckCron = v
	}
	if v := os.Getenv("NOTIFY_TIMES"); v != "" {
		cfg.Notify.Times = strings.Split(v, ",")
	}
	if v := os.Getenv("NOTIFY_TIMEZONE"); v != "" {
		cfg.Notify.Timezone = v
	}
	if v := os.Getenv("WATCHLIST_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watchlist.Capacity = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 10
	}
	if cfg.Watchlist.StateFile == "" {
		cfg.Watchlist.StateFile = "data/watchlist.json"
	}
	if cfg.Watchlist.Capacity == 0 {
		cfg.Watchlist.Capacity = 3
	}
	if cfg.Schedule.CheckCron == "" {
		// Every 30 minutes during extended market hours, weekdays
		cfg.Schedule.CheckCron = "0 */30 9-17 * * 1-5"
	}
	if len(cfg.Notify.Times) == 0 {
		cfg.Notify.Times = []string{"11:00", "14:00"}
	}
	if cfg.Notify.WindowMinutes == 0 {
		cfg.Notify.WindowMinutes = 30
	}
	if cfg.Notify.Timezone == "" {
		cfg.Notify.Timezone = "America/New_York"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockpulse.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.HistoryDays < 6 {
		return fmt.Errorf("data_source.history_days must be at least 6")
	}
	if c.Watchlist.Capacity <= 0 {
		return fmt.Errorf("watchlist.capacity must be positive")
	}
	if c.Notify.WindowMinutes <= 0 {
		return fmt.Errorf("notify.window_minutes must be positive")
	}
	return nil
}
