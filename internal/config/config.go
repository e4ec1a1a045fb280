// Package config provides configuration loading, validation, and defaults
// for the purgebot application. Values come from defaults, an optional
// config.yaml, and BOT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration for all purgebot components.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram connection settings.
type TelegramConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	AdminID int64  `mapstructure:"admin_id" validate:"required,gt=0"`
}

// DatabaseConfig holds settings for the recorded-history store.
type DatabaseConfig struct {
	Path      string        `mapstructure:"path"      validate:"required"`
	Retention time.Duration `mapstructure:"retention" validate:"min=24h"`
}

// CleanupConfig tunes the selection-and-deletion pipeline.
type CleanupConfig struct {
	// MaxBulkAge is the platform's bulk-delete age ceiling; messages older
	// than this are never selected.
	MaxBulkAge time.Duration `mapstructure:"max_bulk_age" validate:"min=1h"`

	// SafetyMargin pulls the cutoff forward to absorb clock drift and
	// pagination latency against the platform's own age check.
	SafetyMargin time.Duration `mapstructure:"safety_margin" validate:"min=0,max=1h"`

	BatchLimit       int           `mapstructure:"batch_limit"       validate:"min=1,max=100"`
	DeleteDelay      time.Duration `mapstructure:"delete_delay"      validate:"min=100ms"`
	ConfirmThreshold int           `mapstructure:"confirm_threshold" validate:"min=1"`
	ConfirmTimeout   time.Duration `mapstructure:"confirm_timeout"   validate:"min=1s,max=10m"`
	PageSize         int           `mapstructure:"page_size"         validate:"min=1,max=1000"`
}

// SchedulerConfig lists scheduled background tasks keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables one scheduled task with a cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// LoadConfig reads configuration from the given YAML file (missing file is
// fine, defaults apply), layers BOT_* environment variables on top, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("database.path", "storage.db")
	v.SetDefault("database.retention", 30*24*time.Hour)

	v.SetDefault("cleanup.max_bulk_age", 14*24*time.Hour)
	v.SetDefault("cleanup.safety_margin", 5*time.Minute)
	v.SetDefault("cleanup.batch_limit", 100)
	v.SetDefault("cleanup.delete_delay", 1500*time.Millisecond)
	v.SetDefault("cleanup.confirm_threshold", 100)
	v.SetDefault("cleanup.confirm_timeout", 30*time.Second)
	v.SetDefault("cleanup.page_size", 100)

	v.SetDefault("scheduler.tasks", map[string]TaskConfig{
		"retention_prune": {Enabled: true, Schedule: "0 0 4 * * *"},
		"sql_maintenance": {Enabled: true, Schedule: "0 30 4 * * 0"},
	})
}
