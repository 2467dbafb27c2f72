package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Study    StudyConfig    `mapstructure:"study"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL selects the in-memory backend, which is useful for local
// development and tests.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// StudyConfig contains the scheduling engine's tunables: where the
// vocabulary dictionary lives, the default daily quotas, and the review
// interval ladder in days.
type StudyConfig struct {
	DictionaryPath string `mapstructure:"dictionary_path" validate:"required"`
	DailyGoal      int    `mapstructure:"daily_goal"      validate:"required,gt=0"`
	ReviewLimit    int    `mapstructure:"review_limit"    validate:"required,gt=0"`
	Intervals      []int  `mapstructure:"intervals"       validate:"omitempty,dive,gt=0"`
}
