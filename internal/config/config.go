package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log  LogConfig
	Form FormConfig
}

// LogConfig holds log sink settings. The TUI owns the terminal, so logs
// go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// FormConfig holds form validation settings.
type FormConfig struct {
	Countries  []string `mapstructure:"countries"`
	MinNameLen int      `mapstructure:"min_name_len"`
}

// Load reads configuration from file and env. Env var overrides use prefix FORMSTATE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "formstate", "formstate.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("form.countries", []string{
		"Canada", "United States", "Mexico", "Netherlands", "Germany", "Australia",
	})
	v.SetDefault("form.min_name_len", 2)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FORMSTATE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formstate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMSTATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// LogLevel maps the configured level name to a slog level, defaulting to
// info on anything unrecognized.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
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
