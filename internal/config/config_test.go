package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("TOKEN_TTL", "90")

	cfg := Load()
	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, BlobBackendLocal, cfg.BlobBackend)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestLoad_TablePrefixOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "custom_")
	assert.Equal(t, "custom_", Load().TablePrefix)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseURL:       "postgres://localhost/vault",
			FileEncryptionKey: "key",
			JWTSecret:         "secret",
			TokenTTL:          time.Hour,
			BlobBackend:       BlobBackendLocal,
			FilesDir:          "./files",
			MaxUploadBytes:    1,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no key", func(c *Config) { c.FileEncryptionKey = "" }, "FILE_ENCRYPTION_KEY"},
		{"no token source", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"no database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"s3 without bucket", func(c *Config) { c.BlobBackend = BlobBackendS3 }, "S3_BUCKET"},
		{"unknown backend", func(c *Config) { c.BlobBackend = "ftp" }, "BLOB_BACKEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	jwksOnly := valid()
	jwksOnly.JWTSecret = ""
	jwksOnly.JWKSURL = "https://idp.example.com/jwks.json"
	assert.NoError(t, jwksOnly.Validate())
}

func TestNewLogger_FanoutToFile(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	logger, closeFn, err := NewLogger(&Config{Environment: "prod", LogDir: dir, LogMaxFiles: 3}, &stdout)
	require.NoError(t, err)

	logger.Info("media stored", "media_id", 7)
	closeFn()

	assert.Contains(t, stdout.String(), `"media_id":7`)
	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "media stored")
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"server-1.log", "server-2.log", "server-3.log", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))
	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "server-2.log"), filepath.Join(dir, "server-3.log")}, files)
	assert.FileExists(t, filepath.Join(dir, "other.txt"))
}
