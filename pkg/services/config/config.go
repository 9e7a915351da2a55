// Package config loads the application configuration file. Values may be
// overridden through REVENUE_ATLAS_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type App struct {
	ServerHost   string `mapstructure:"server_host"`
	ServerPort   string `mapstructure:"server_port"`
	DBPath       string `mapstructure:"db_path"`
	RegistryPath string `mapstructure:"registry_path"`
	Currency     string `mapstructure:"currency"`
}

// Load reads the config file at path. An empty path skips the file and
// applies defaults and environment overrides only.
func Load(path string) (*App, error) {
	v := viper.New()

	v.SetDefault("server_host", "localhost")
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_path", "revenue-atlas.db")
	v.SetDefault("registry_path", "lines.ini")
	v.SetDefault("currency", "EUR")

	v.SetEnvPrefix("REVENUE_ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &app, nil
}
