package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_TIMEZONE", "Europe/Berlin")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "fittrack", cfg.Database.Name)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Second, cfg.App.ReminderDelay)
	assert.Equal(t, 2, cfg.App.WorkerPoolSize)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  address: ":9090"
jwt:
  secret: "from-file"
  expiration: "30m"
app:
  reminder_delay: "2s"
catalog:
  s3_key: "reference/exercises.csv"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 2*time.Second, cfg.App.ReminderDelay)
	assert.Equal(t, "reference/exercises.csv", cfg.Catalog.S3Key)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestAppConfig_InvalidTimezone(t *testing.T) {
	_, err := AppConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
