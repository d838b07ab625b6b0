package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("STORAGE", "")
	t.Setenv("ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 15, cfg.GranularityMinutes)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone.String())
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("STORAGE", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMemoryStorageSkipsDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage)
}

func TestLoadRejectsBadGranularity(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "zero")

	_, err := Load()
	assert.Error(t, err)
}
