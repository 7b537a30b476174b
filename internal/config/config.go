package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Debug        bool          `mapstructure:"debug"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	// Type is one of sqlite, postgres or mysql
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

type SessionConfig struct {
	// Backend is either memory or redis
	Backend    string        `mapstructure:"backend"`
	Duration   time.Duration `mapstructure:"duration"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StorageConfig struct {
	UploadDir     string `mapstructure:"upload_dir"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`

	// S3Bucket enables archiving uploads to S3 when set
	S3Bucket   string `mapstructure:"s3_bucket"`
	S3Prefix   string `mapstructure:"s3_prefix"`
	S3Region   string `mapstructure:"s3_region"`
	S3Endpoint string `mapstructure:"s3_endpoint"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"server.host":             "127.0.0.1",
	"server.port":             "5000",
	"server.debug":            false,
	"server.read_timeout":     15 * time.Second,
	"server.write_timeout":    30 * time.Second,
	"database.type":           "sqlite",
	"database.path":           "./users.db",
	"database.url":            "",
	"session.backend":         "memory",
	"session.duration":        24 * time.Hour,
	"session.cookie_name":     "session_id",
	"redis.address":           "localhost:6379",
	"redis.password":          "",
	"redis.db":                0,
	"storage.upload_dir":      "./uploads",
	"storage.max_upload_size": int64(10 * 1024 * 1024), // 10MB
	"storage.s3_bucket":       "",
	"storage.s3_prefix":       "resumes/",
	"storage.s3_region":       "us-east-1",
	"storage.s3_endpoint":     "",
	"log.level":               "info",
	"log.format":              "json",
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and environment variables, in increasing precedence.
// SERVER_PORT overrides server.port, STORAGE_UPLOAD_DIR overrides
// storage.upload_dir and so on.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values that cannot be defaulted sensibly
func (c *Config) Validate() error {
	switch strings.ToLower(c.Session.Backend) {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session backend: %s", c.Session.Backend)
	}
	if c.Session.Duration <= 0 {
		return fmt.Errorf("session duration must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}
