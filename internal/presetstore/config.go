package presetstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds presetd settings.
type Config struct {
	ListenAddr      string        `mapstructure:"listenAddr"`
	LogLevel        string        `mapstructure:"logLevel"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	Storage         StorageConfig `mapstructure:"storage"`
}

// StorageConfig selects and configures the database backend.
type StorageConfig struct {
	Driver string         `mapstructure:"driver"`
	SQLite SQLiteConfig   `mapstructure:"sqlite"`
	DB     PostgresConfig `mapstructure:"db"`
}

// SQLiteConfig holds SQLite settings. An empty Path keeps the database in memory.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// DSN returns the Postgres connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listenAddr", ":8090")
	v.SetDefault("logLevel", "info")
	v.SetDefault("shutdownTimeout", "5s")

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite.path", "presets.db")

	v.SetDefault("storage.db.host", "localhost")
	v.SetDefault("storage.db.port", "5432")
	v.SetDefault("storage.db.username", "postgres")
	v.SetDefault("storage.db.password", "postgres")
	v.SetDefault("storage.db.database", "presets")
}

// LoadConfig reads presetd.yaml from configDir (optional) and applies
// PRESETD_* environment overrides, e.g. PRESETD_STORAGE_DRIVER=postgres.
func LoadConfig(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("presetd")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.SetEnvPrefix("PRESETD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return cfg, nil
}
