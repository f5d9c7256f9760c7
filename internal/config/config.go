// Package config loads tool configuration: the remote template source
// coordinates and the cache root. Values come from defaults, an
// optional strata.yaml, and STRATA_* environment variables, in
// ascending priority.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config is the tool configuration.
type Config struct {
	// Templates describes the remote template repository.
	Templates TemplatesConfig `mapstructure:"templates"`
	// CacheDir is the template cache root directory.
	CacheDir string `mapstructure:"cache_dir"`
}

// TemplatesConfig describes where template archives are fetched from.
type TemplatesConfig struct {
	// Host is the archive host.
	Host string `mapstructure:"host"`
	// Owner is the repository owner.
	Owner string `mapstructure:"owner"`
	// Repo is the repository name.
	Repo string `mapstructure:"repo"`
	// Ref is the default branch templates are fetched at.
	Ref string `mapstructure:"ref"`
}

// Load reads configuration from defaults, an optional config file
// (strata.yaml in the working directory or the user's config
// directory), and STRATA_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("templates.host", "github.com")
	v.SetDefault("templates.owner", "stratacms")
	v.SetDefault("templates.repo", "strata-templates")
	v.SetDefault("templates.ref", "main")
	v.SetDefault("cache_dir", filepath.Join(xdg.CacheHome, "strata", "templates"))

	v.SetConfigName("strata")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "strata"))

	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks that required fields are present.
func validate(cfg *Config) error {
	if cfg.Templates.Host == "" {
		return fmt.Errorf("templates.host cannot be empty")
	}
	if cfg.Templates.Owner == "" || cfg.Templates.Repo == "" {
		return fmt.Errorf("templates.owner and templates.repo cannot be empty")
	}
	if cfg.Templates.Ref == "" {
		return fmt.Errorf("templates.ref cannot be empty")
	}
	if cfg.CacheDir == "" {
		return fmt.Errorf("cache_dir cannot be empty")
	}
	return nil
}
