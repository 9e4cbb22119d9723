package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/daylog/pkg/region"
)

const (
	configName = ".daylog"

	// OrderNewestFirst keeps today at the top of the month file.
	OrderNewestFirst = "newest-first"
	// OrderOldestFirst appends each day to the month file.
	OrderOldestFirst = "oldest-first"

	// LayoutMonthly keeps one file per month.
	LayoutMonthly = "monthly"
	// LayoutDaily keeps one file per day.
	LayoutDaily = "daily"
)

// Config is the daylog configuration.
type Config struct {
	Path     string     `mapstructure:"path" yaml:"path"`
	Order    string     `mapstructure:"order" yaml:"order"`
	Layout   string     `mapstructure:"layout" yaml:"layout"`
	LogLevel string     `mapstructure:"log_level" yaml:"log_level"`
	Wiki     WikiConfig `mapstructure:"wiki" yaml:"wiki"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// WikiConfig holds the remote wiki the journal is mirrored to.
type WikiConfig struct {
	URL         string `mapstructure:"url" yaml:"url"`
	Space       string `mapstructure:"space" yaml:"space"`
	User        string `mapstructure:"user" yaml:"user"`
	Token       string `mapstructure:"token" yaml:"token,omitempty"`
	ParentID    string `mapstructure:"parent_id" yaml:"parent_id,omitempty"`
	TitlePrefix string `mapstructure:"title_prefix" yaml:"title_prefix"`
}

// Enabled reports whether enough is configured to talk to the wiki.
func (w WikiConfig) Enabled() bool {
	return w.URL != "" && w.Space != ""
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Order, validation.In(OrderNewestFirst, OrderOldestFirst)),
		validation.Field(&c.Layout, validation.In(LayoutMonthly, LayoutDaily)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	return c.Wiki.Validate()
}

// Validate checks the wiki configuration. An empty URL disables syncing.
func (w *WikiConfig) Validate() error {
	return validation.ValidateStruct(w,
		validation.Field(&w.URL, is.URL),
		validation.Field(&w.Space, validation.When(w.URL != "", validation.Required)),
		validation.Field(&w.User, validation.When(w.URL != "", validation.Required)),
	)
}

// Dir is the journal directory with "~" expanded.
func (c *Config) Dir() (string, error) {
	return homedir.Expand(c.Path)
}

// Locator is the region convention the configuration selects.
func (c *Config) Locator() region.Locator {
	l := region.Locator{Order: region.NewestFirst, Layout: region.Monthly}
	if c.Order == OrderOldestFirst {
		l.Order = region.OldestFirst
	}
	if c.Layout == LayoutDaily {
		l.Layout = region.Daily
	}
	return l
}

// SlogLevel maps the configured level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.daylog")
	v.SetDefault("order", OrderNewestFirst)
	v.SetDefault("layout", LayoutMonthly)
	v.SetDefault("log_level", "warn")
	v.SetDefault("wiki.title_prefix", "Journal")
	// Keys need a default for DAYLOG_WIKI_* variables to be picked up.
	for _, key := range []string{"wiki.url", "wiki.space", "wiki.user", "wiki.token", "wiki.parent_id"} {
		v.SetDefault(key, "")
	}
}

// LoadConfig reads .daylog.yaml from $DAYLOG_CONFIG_PATH, the home
// directory or the working directory. DAYLOG_* environment variables
// override file values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName) // .yaml is implicit
	v.SetEnvPrefix("DAYLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DAYLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("store: decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store: invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultConfigFile is where SaveConfig writes when no file was read.
func DefaultConfigFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+".yaml"), nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("store: invalid config: %w", err)
	}
	v := viper.New()
	v.Set("path", cfg.Path)
	v.Set("order", cfg.Order)
	v.Set("layout", cfg.Layout)
	v.Set("log_level", cfg.LogLevel)
	v.Set("wiki.url", cfg.Wiki.URL)
	v.Set("wiki.space", cfg.Wiki.Space)
	v.Set("wiki.user", cfg.Wiki.User)
	v.Set("wiki.parent_id", cfg.Wiki.ParentID)
	v.Set("wiki.title_prefix", cfg.Wiki.TitlePrefix)
	if cfg.Wiki.Token != "" {
		v.Set("wiki.token", cfg.Wiki.Token)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Op: "write config", Path: path, Err: err}
	}
	if err := v.WriteConfigAs(path); err != nil {
		return &Error{Op: "write config", Path: path, Err: err}
	}
	return nil
}
