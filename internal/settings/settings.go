package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	appName   = "scripture-tui"
	envPrefix = "SCRIPTURE"
)

// Side selects which API base URL to use. The interactive reader talks to
// the public endpoint; CLI subcommands may use a server-side one.
type Side int

const (
	Server Side = iota
	Public
)

type Config struct {
	APIBaseURL       string `mapstructure:"api_base_url"`
	PublicAPIBaseURL string `mapstructure:"public_api_base_url"`
	VersionID        int    `mapstructure:"version_id"`
	Theme            string `mapstructure:"theme"`
	HistoryDir       string `mapstructure:"history_dir"`
	LogFile          string `mapstructure:"log_file"`
	Debug            bool   `mapstructure:"debug"`

	v     *viper.Viper
	prefs map[string]any // keys changed through the setters, written by Save
}

// SetTheme changes the theme and marks it for saving.
func (c *Config) SetTheme(slug string) {
	c.Theme = slug
	c.setPref("theme", slug)
}

// SetVersionID changes the version and marks it for saving.
func (c *Config) SetVersionID(id int) {
	c.VersionID = id
	c.setPref("version_id", id)
}

func (c *Config) setPref(key string, value any) {
	if c.prefs == nil {
		c.prefs = map[string]any{}
	}
	c.prefs[key] = value
}

// APIBase returns the base URL for side, falling back to the other side's
// URL when it is not configured.
func (c *Config) APIBase(side Side) string {
	primary, fallback := c.APIBaseURL, c.PublicAPIBaseURL
	if side == Public {
		primary, fallback = fallback, primary
	}
	if primary != "" {
		return primary
	}
	return fallback
}

// Path is the file the configuration was read from or will be saved to.
func (c *Config) Path() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

func defaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// Load reads the configuration at path, or the default location when path
// is empty. A missing file is not an error; defaults and SCRIPTURE_*
// environment variables still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("public_api_base_url", "")
	v.SetDefault("version_id", 1)
	v.SetDefault("theme", "catppuccin-mocha")
	v.SetDefault("history_dir", "~/.cache/"+appName+"/history")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := &Config{v: v}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var err error
	if c.HistoryDir, err = homedir.Expand(c.HistoryDir); err != nil {
		return nil, fmt.Errorf("expand history_dir: %w", err)
	}
	if c.LogFile, err = homedir.Expand(c.LogFile); err != nil {
		return nil, fmt.Errorf("expand log_file: %w", err)
	}
	return c, nil
}

// Save writes the preferences changed through SetTheme and SetVersionID
// into the configuration file, creating it if needed. Everything else in the
// file is kept as it is on disk; defaults, environment overrides and flag
// values are never written.
func Save(c *Config) error {
	if c.v == nil {
		return errors.New("config was not loaded")
	}
	path := c.v.ConfigFileUsed()

	onDisk := viper.New()
	onDisk.SetConfigFile(path)
	onDisk.SetConfigType("yaml")
	if err := onDisk.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	for key, value := range c.prefs {
		onDisk.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := onDisk.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
