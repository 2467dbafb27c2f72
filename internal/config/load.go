package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from the config
// file, which in turn take precedence over the built-in defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file: ./config.yaml. A missing file is fine, any
	// other read failure is not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables use the HANZIDECK_ prefix with underscores for
	// nesting, e.g. HANZIDECK_SERVER_PORT, HANZIDECK_DATABASE_URL.
	v.SetEnvPrefix("HANZIDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the built-in defaults. Registering them through
// viper (rather than zero-value checks later) is what lets AutomaticEnv
// pick up env overrides for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("study.dictionary_path", "data/vocabulary.csv")
	v.SetDefault("study.daily_goal", 20)
	v.SetDefault("study.review_limit", 50)
}
