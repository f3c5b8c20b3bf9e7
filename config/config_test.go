package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "FRONTEND_ORIGIN",
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
		"IMAGE_HOST_URL", "IMAGE_HOST_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.FrontendOrigin)
	assert.Nil(t, cfg.Google)
	assert.Empty(t, cfg.Images.UploadURL)
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "storefront")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DatabaseURL, "host=db.internal")
	assert.Contains(t, cfg.DatabaseURL, "dbname=storefront")
	assert.Contains(t, cfg.DatabaseURL, "port=5432")
}

func TestLoadGoogleNeedsBothCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Google)

	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	cfg, err = Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Google)
	assert.Equal(t, "client-id", cfg.Google.ClientID)
	assert.Equal(t, "http://localhost:3000/api/auth/google/callback", cfg.Google.RedirectURL)
}
