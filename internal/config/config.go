// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// SchedulerConfig tunes the review scheduling engine.
type SchedulerConfig struct {
	// Tiers overrides the canonical tier interval tables per tier name.
	// Sequences must be strictly increasing positive day counts; validated at
	// load time by the tier policy.
	Tiers map[string][]int `mapstructure:"tiers"`

	// DefaultTier is the tier assumed for CLI invocations that have no
	// account system to ask.
	DefaultTier string `mapstructure:"default_tier" validate:"required"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
	FeedDirectory   string `mapstructure:"feed_directory"`
}

// NotifyConfig tunes the due-feed polling loop.
type NotifyConfig struct {
	PollIntervalSeconds int      `mapstructure:"poll_interval_seconds" validate:"gt=0"`
	Learners            []string `mapstructure:"learners"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/recall")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load reads the configuration from configFile, or from the default search
// paths when configFile is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "recall")
	v.SetDefault("database.username", "recall")
	v.SetDefault("scheduler.default_tier", "free")
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "export"))
	v.SetDefault("outputs.feed_directory", filepath.Join("outputs", "feed"))
	v.SetDefault("notify.poll_interval_seconds", 300)

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
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

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
