package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"

	"refman/src/internal/bibtex"
	"refman/src/internal/logx"
)

// FileName is the per-directory config file looked up in the working directory.
const FileName = ".refman.json"

// EnvPrefix prefixes environment overrides, e.g. REFMAN_LOG_LEVEL.
const EnvPrefix = "REFMAN"

// ErrConfigFileNotFound is returned when --config names a missing file.
var ErrConfigFileNotFound = errors.New("config file not found")

// Config holds runtime settings. Values come from defaults, the config file
// (JSON with comments), REFMAN_* environment variables and command flags, in
// increasing order of precedence.
type Config struct {
	File      string `mapstructure:"file"`
	LogLevel  string `mapstructure:"log_level"`
	Collision string `mapstructure:"collision"`
	History   string `mapstructure:"history"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// flagKeys maps command flag names onto config keys.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"collision": "collision",
	"history":   "history",
}

// Load builds the configuration. explicit is the --config flag value; flags
// may be nil.
func Load(explicit string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("file", "")
	v.SetDefault("log_level", logx.DefaultLevel)
	v.SetDefault("collision", bibtex.SuffixOnce.String())
	v.SetDefault("history", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := BindFlags(v, flags); err != nil {
		return Config{}, err
	}

	path, err := locate(explicit)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := readFile(v, path); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = path
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags attaches the known command flags present in fs to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, ok := bibtex.ParsePolicy(c.Collision); !ok {
		return fmt.Errorf("invalid collision policy %q (want suffix or resolve)", c.Collision)
	}
	if !logx.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Policy returns the cite key collision policy.
func (c Config) Policy() bibtex.Policy {
	p, _ := bibtex.ParsePolicy(c.Collision)
	return p
}

// locate returns the config file to read: the explicit path (which must
// exist), else FileName in the working directory, else the user config.
func locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, explicit)
		}
		return explicit, nil
	}
	candidates := []string{FileName}
	if p := userConfigPath(); p != "" {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// userConfigPath is $XDG_CONFIG_HOME/refman/config.json, falling back to
// ~/.config/refman/config.json.
func userConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "refman", "config.json")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "refman", "config.json")
	}
	return ""
}

func readFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	// Standardize JSONC to JSON
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(std)); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
