package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 10*time.Second, cfg.ChatSessionsTTL)
	assert.Equal(t, 5*time.Second, cfg.ChatMessagesTTL)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=http://backend/api\nCACHE_TTL=2m\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("API_BASE_URL")
		os.Unsetenv("CACHE_TTL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend/api", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Configuration{CORSOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Configuration{DBHost: "db", DBPort: "5432", DBName: "rd", DBUser: "u", DBPassword: "p"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rd sslmode=disable", cfg.PostgresDSN())
}
