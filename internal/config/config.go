package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config is only needed when the exercise catalog is read from a bucket.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Stdout bool   `mapstructure:"stdout"`
	JSON   bool   `mapstructure:"json"`
}

// Debug reports whether the debug level is configured.
func (l LogConfig) Debug() bool {
	return strings.EqualFold(l.Level, "debug")
}

// AppConfig carries the settings the analytics and notification engine
// depend on. Timezone is an IANA name, resolved with Location.
type AppConfig struct {
	Timezone       string        `mapstructure:"timezone"`
	ReminderDelay  time.Duration `mapstructure:"reminder_delay"`
	WorkerPoolSize int           `mapstructure:"worker_pool_size"`
	TaskTimeout    time.Duration `mapstructure:"task_timeout"`
}

// CatalogConfig points at the exercise reference CSV. S3Key wins over Path
// when both are set.
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	S3Key string `mapstructure:"s3_key"`
}

// Location resolves the configured time zone.
func (a AppConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, app.reminder_delay -> APP_REMINDER_DELAY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file, rely on defaults and env vars.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.JWT.Secret == "" {
		return config, fmt.Errorf("jwt.secret must be set")
	}
	if _, err = config.App.Location(); err != nil {
		return
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fittrack")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.stdout", true)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.reminder_delay", "10s")
	v.SetDefault("app.worker_pool_size", 2)
	v.SetDefault("app.task_timeout", "30s")
	v.SetDefault("catalog.path", "data/exercises.csv")
	// Bind keys without defaults so AutomaticEnv picks them up on Unmarshal.
	for _, key := range []string{
		"jwt.secret",
		"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name",
		"log.file", "log.json",
		"catalog.s3_key",
	} {
		_ = v.BindEnv(key)
	}
}
