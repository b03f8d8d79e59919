package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "Ventas", Get("APP_NAME", ""))
	assert.Equal(t, "fallback", Get("NOT_A_REAL_KEY", "fallback"))
	assert.Equal(t, 2*time.Hour, SessionTTL())
	assert.True(t, CSRFEnabled())
}

func TestDatabaseDSNFollowsDriver(t *testing.T) {
	t.Cleanup(func() { Set("DB_DRIVER", "sqlite") })

	Set("DB_DRIVER", "postgres")
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Equal(t, defaultPostgresDSN, DatabaseDSN())

	Set("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())
}

func TestTrustedProxiesList(t *testing.T) {
	t.Cleanup(func() { Set("TRUSTED_PROXIES", "") })
	assert.Empty(t, TrustedProxies())

	Set("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.1 ")
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, TrustedProxies())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("LOGIN_MAX_ATTEMPTS", "9")
	assert.Equal(t, 9, LoginMaxAttempts())
}

func TestLoadFromFilesMergesJSONAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"summary_cache_ttl": "5m", "storage_disk": "s3"}`), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("STORAGE_DISK=local\nADMIN_EMAIL=root@ventas.test\n"), 0o600))
	t.Cleanup(func() {
		Set("SUMMARY_CACHE_TTL", "60s")
		Set("STORAGE_DISK", "local")
		Set("ADMIN_EMAIL", "")
	})

	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, 5*time.Minute, SummaryCacheTTL())
	assert.Equal(t, "local", StorageDefault())
	assert.Equal(t, "root@ventas.test", Get("ADMIN_EMAIL", ""))
}

func TestLoadFromFilesIgnoresMissingFiles(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".env")))
}
