// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Backup   BackupConfig   `mapstructure:"backup"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

// ReminderConfig bounds the daily window in which due-card reminders fire.
type ReminderConfig struct {
	StartHour int `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int `mapstructure:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`
}

type BackupConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/doughub")
	}

	v.SetDefault("database.path", filepath.Join("data", "doughub.db"))
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("reminder.start_hour", 8)
	v.SetDefault("reminder.end_hour", 22)
	v.SetDefault("backup.directory", "backups")

	// API credentials come from the environment only, never the config file.
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
