package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr())
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./users.db", cfg.Database.Path)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.Duration)
	assert.Equal(t, "session_id", cfg.Session.CookieName)
	assert.Equal(t, "./uploads", cfg.Storage.UploadDir)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxUploadSize)
	assert.Empty(t, cfg.Storage.S3Bucket)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("STORAGE_UPLOAD_DIR", "/tmp/resumes")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://localhost/quiz", cfg.Database.URL)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "/tmp/resumes", cfg.Storage.UploadDir)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Session: SessionConfig{Backend: "memory", Duration: time.Hour, CookieName: "session_id"},
			Storage: StorageConfig{UploadDir: "./uploads", MaxUploadSize: 1024},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown session backend",
			mutate:  func(c *Config) { c.Session.Backend = "memcached" },
			wantErr: "unsupported session backend",
		},
		{
			name:    "zero session duration",
			mutate:  func(c *Config) { c.Session.Duration = 0 },
			wantErr: "session duration must be positive",
		},
		{
			name:    "missing upload dir",
			mutate:  func(c *Config) { c.Storage.UploadDir = "" },
			wantErr: "upload directory is required",
		},
		{
			name:    "negative upload size",
			mutate:  func(c *Config) { c.Storage.MaxUploadSize = -1 },
			wantErr: "max upload size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
