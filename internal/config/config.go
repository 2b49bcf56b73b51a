// Package config provides Viper-based configuration loading for the career simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CareerConfig holds the shape of a career.
type CareerConfig struct {
	// MaxTurns is the number of playable turns.
	MaxTurns int `mapstructure:"max_turns"`
	// MaxEnergy is the trainee's energy cap.
	MaxEnergy int `mapstructure:"max_energy"`
	// StartingEnergy is the energy on turn 1.
	StartingEnergy int `mapstructure:"starting_energy"`
}

// TrainingConfig holds training engine settings.
type TrainingConfig struct {
	// FacilitiesFile optionally overrides the built-in facility table.
	FacilitiesFile string `mapstructure:"facilities_file"`
	// FriendshipGain is the friendship each assigned support gains per successful training.
	FriendshipGain int `mapstructure:"friendship_gain"`
	// SupportLevel is the level supports are built at when none is given.
	SupportLevel int `mapstructure:"support_level"`
}

// RecordsConfig locates the trainee and support record database.
type RecordsConfig struct {
	// Path is the SQLite database file.
	Path string `mapstructure:"path"`
}

// ContentConfig locates YAML content files.
type ContentConfig struct {
	// ConditionsDir holds the condition display definitions.
	ConditionsDir string `mapstructure:"conditions_dir"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds snapshot cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// Config is the top-level application configuration.
type Config struct {
	Career   CareerConfig   `mapstructure:"career"`
	Training TrainingConfig `mapstructure:"training"`
	Records  RecordsConfig  `mapstructure:"records"`
	Content  ContentConfig  `mapstructure:"content"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, check := range []error{
		validateCareer(c.Career),
		validateTraining(c.Training),
		validateRecords(c.Records),
		validateContent(c.Content),
		validateDatabase(c.Database),
		validateRedis(c.Redis),
		validateLogging(c.Logging),
	} {
		if check != nil {
			errs = append(errs, check.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func joined(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(errs, "; "))
}

func validateCareer(c CareerConfig) error {
	var errs []string
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("career.max_turns must be >= 1, got %d", c.MaxTurns))
	}
	if c.MaxEnergy < 1 {
		errs = append(errs, fmt.Sprintf("career.max_energy must be >= 1, got %d", c.MaxEnergy))
	}
	if c.StartingEnergy < 0 || c.StartingEnergy > c.MaxEnergy {
		errs = append(errs, fmt.Sprintf("career.starting_energy must be 0-%d, got %d", c.MaxEnergy, c.StartingEnergy))
	}
	return joined(errs)
}

func validateTraining(t TrainingConfig) error {
	var errs []string
	if t.FriendshipGain < 0 {
		errs = append(errs, fmt.Sprintf("training.friendship_gain must be >= 0, got %d", t.FriendshipGain))
	}
	if t.SupportLevel < 1 || t.SupportLevel > 50 {
		errs = append(errs, fmt.Sprintf("training.support_level must be 1-50, got %d", t.SupportLevel))
	}
	return joined(errs)
}

func validateRecords(r RecordsConfig) error {
	if r.Path == "" {
		return fmt.Errorf("records.path must not be empty")
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.ConditionsDir == "" {
		return fmt.Errorf("content.conditions_dir must not be empty")
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	return joined(errs)
}

func validateRedis(r RedisConfig) error {
	var errs []string
	if r.DB < 0 {
		errs = append(errs, fmt.Sprintf("redis.db must be >= 0, got %d", r.DB))
	}
	if r.SnapshotTTL < 0 {
		errs = append(errs, "redis.snapshot_ttl must not be negative")
	}
	return joined(errs)
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return fmt.Errorf("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with UMA_ prefix
	v.SetEnvPrefix("UMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("career.max_turns", 72)
	v.SetDefault("career.max_energy", 100)
	v.SetDefault("career.starting_energy", 100)

	v.SetDefault("training.facilities_file", "")
	v.SetDefault("training.friendship_gain", 7)
	v.SetDefault("training.support_level", 50)

	v.SetDefault("records.path", "characters.db")
	v.SetDefault("content.conditions_dir", "content/conditions")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "uma")
	v.SetDefault("database.password", "uma")
	v.SetDefault("database.name", "umacareer")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_ttl", "24h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
}
