// Package config loads the application configuration from an optional yaml
// file, applying defaults first and environment overrides last.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type HTTPConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

type LoggerConfig struct {
	Mode string `yaml:"mode"` // development or production
}

type StoreConfig struct {
	Currency string `yaml:"currency"`
	Seed     bool   `yaml:"seed"`
}

type JobsConfig struct {
	CouponExpirySpec string `yaml:"coupon_expiry_spec"`
	ChatIdleSpec     string `yaml:"chat_idle_spec"`
	ChatIdleMinutes  int    `yaml:"chat_idle_minutes"`
}

type AppConfig struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Logger LoggerConfig `yaml:"logger"`
	Store  StoreConfig  `yaml:"store"`
	Jobs   JobsConfig   `yaml:"jobs"`
}

func Default() *AppConfig {
	return &AppConfig{
		HTTP:   HTTPConfig{Addr: ":8080", ReadTimeout: 10, WriteTimeout: 10},
		Logger: LoggerConfig{Mode: "development"},
		Store:  StoreConfig{Currency: "MXN", Seed: true},
		Jobs: JobsConfig{
			CouponExpirySpec: "@every 10m",
			ChatIdleSpec:     "@every 5m",
			ChatIdleMinutes:  30,
		},
	}
}

// Load reads path into a config. A missing file is not an error; defaults
// apply. MISTICA_HTTP_ADDR and MISTICA_LOGGER_MODE override the file.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, errors.Wrap(err, "read config")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "parse config")
			}
		}
	}
	if addr := os.Getenv("MISTICA_HTTP_ADDR"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if mode := os.Getenv("MISTICA_LOGGER_MODE"); mode != "" {
		cfg.Logger.Mode = mode
	}
	return cfg, nil
}
