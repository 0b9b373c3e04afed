package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idilsaglam/bucket/internal/bucket"
	"github.com/idilsaglam/bucket/internal/store"
)

var themes = []string{"classic", "neon", "mono"}

type Config struct {
	Storage struct {
		Backend string
		Path    string
		Key     string
	}
	Theme    string
	LogLevel slog.Level

	// Color forces ANSI colors even when output is not a terminal;
	// NoColor turns them off and wins over Color.
	Color   bool
	NoColor bool
}

// RegisterFlags adds the root flags that override config values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("backend", "", "storage backend: json, sqlite, memory")
	fs.String("data", "", "path of the data file")
	fs.String("key", "", "record key inside the data file")
	fs.String("theme", "", "output theme: classic, neon, mono")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Bool("color", false, "force colored output")
	fs.Bool("no-color", false, "disable colored output")
	fs.String("config", "", "config file (default ./bucket.yaml)")
}

// Load reads config from environment (BUCKET_ prefix), an optional
// bucket.yaml and flags, flags winning. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BUCKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", store.JSON)
	v.SetDefault("storage.key", bucket.DefaultKey)
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("log.level", "warn")
	v.SetDefault("ui.no_color", os.Getenv("NO_COLOR") != "")

	if fs != nil {
		for key, flag := range map[string]string{
			"storage.backend": "backend",
			"storage.path":    "data",
			"storage.key":     "key",
			"ui.theme":        "theme",
			"log.level":       "log-level",
			"ui.color":        "color",
			"ui.no_color":     "no-color",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := readFile(v, fs); err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Storage.Backend = strings.ToLower(v.GetString("storage.backend"))
	cfg.Storage.Path = v.GetString("storage.path")
	cfg.Storage.Key = strings.TrimSpace(v.GetString("storage.key"))
	cfg.Theme = strings.ToLower(v.GetString("ui.theme"))
	cfg.Color = v.GetBool("ui.color")
	cfg.NoColor = v.GetBool("ui.no_color")

	if !slices.Contains(store.Backends, cfg.Storage.Backend) {
		return nil, fmt.Errorf("invalid BUCKET_STORAGE_BACKEND %q: must be one of %s", cfg.Storage.Backend, strings.Join(store.Backends, ", "))
	}
	if cfg.Storage.Key == "" {
		return nil, fmt.Errorf("BUCKET_STORAGE_KEY must not be empty")
	}
	if !slices.Contains(themes, cfg.Theme) {
		return nil, fmt.Errorf("invalid BUCKET_UI_THEME %q: must be one of %s", cfg.Theme, strings.Join(themes, ", "))
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("invalid BUCKET_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// readFile loads an explicit --config file (must exist) or the optional
// bucket.yaml from the working directory or $XDG_CONFIG_HOME/bucket.
func readFile(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs != nil {
		if p, _ := fs.GetString("config"); p != "" {
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", p, err)
			}
			return nil
		}
	}
	v.SetConfigName("bucket")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func configDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "bucket")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bucket")
}
