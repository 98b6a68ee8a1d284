package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration, read from
// ~/.config/shelf/config.yaml with SHELF_* environment overrides.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

type DataConfig struct {
	File      string `mapstructure:"file"`       // library CSV path
	CoversDir string `mapstructure:"covers_dir"` // cover image directory
}

type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type UIConfig struct {
	DefaultSort string `mapstructure:"default_sort"`
}

func Default() *Config {
	return &Config{
		Data: DataConfig{
			File:      DefaultLibraryPath(),
			CoversDir: DefaultCoversDir(),
		},
		Logging: LoggingConfig{
			File:  DefaultLogPath(),
			Level: "info",
		},
		UI: UIConfig{
			DefaultSort: "",
		},
	}
}

// Load reads the config file if one exists and applies environment
// overrides on top of the defaults. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultConfigDir())

	v.SetDefault("data.file", cfg.Data.File)
	v.SetDefault("data.covers_dir", cfg.Data.CoversDir)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("ui.default_sort", cfg.UI.DefaultSort)

	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
