// Package config loads docnav settings from defaults, a config file,
// DOCNAV_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mchmarny/docnav/pkg/logger"
	"github.com/mchmarny/docnav/pkg/server"
	"github.com/mchmarny/docnav/pkg/sidebar"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "DOCNAV_"

	DefaultConfigFile = "docnav.yaml"
)

// Config holds the resolved settings.
type Config struct {
	Port            int           `koanf:"port"`
	BasePath        string        `koanf:"base_path"`
	DocsPrefix      string        `koanf:"docs_prefix"`
	SidebarFile     string        `koanf:"sidebar_file"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	IDScope         string        `koanf:"id_scope"`
	StrictRoutes    bool          `koanf:"strict_routes"`
	Watch           bool          `koanf:"watch"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"port":             server.DefaultPort,
		"base_path":        sidebar.DefaultBasePath,
		"docs_prefix":      sidebar.DefaultDocsPrefix,
		"sidebar_file":     "",
		"log_level":        "info",
		"log_format":       logger.FormatJSON,
		"id_scope":         string(sidebar.ScopeGlobal),
		"strict_routes":    false,
		"watch":            false,
		"shutdown_timeout": server.DefaultShutdownTimeout.String(),
	}
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// An empty cfgFile loads ./docnav.yaml when it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// DOCNAV_SIDEBAR_FILE -> sidebar_file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			// --sidebar maps onto sidebar_file; other flags are kebab-case keys.
			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "sidebar" {
				key = "sidebar_file"
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if _, err := sidebar.ParseIDScope(c.IDScope); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid shutdown timeout %s", c.ShutdownTimeout)
	}

	return nil
}

// Resolver returns the href resolver described by the configuration.
func (c *Config) Resolver() sidebar.Resolver {
	return sidebar.Resolver{
		BasePath:   c.BasePath,
		DocsPrefix: c.DocsPrefix,
	}
}

// ValidateOptions returns the sidebar validation options described by the configuration.
func (c *Config) ValidateOptions() []sidebar.ValidateOption {
	scope, err := sidebar.ParseIDScope(c.IDScope)
	if err != nil {
		scope = sidebar.ScopeGlobal
	}

	opts := []sidebar.ValidateOption{sidebar.WithIDScope(scope)}
	if c.StrictRoutes {
		opts = append(opts, sidebar.WithStrictRoutes(c.Resolver()))
	}

	return opts
}
