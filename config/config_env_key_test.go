package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"database": map[string]any{
			"autoMigrate": false,
		},
		"cart": map[string]any{
			"maxUpsertAttempts": 3,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "DATABASE_AUTOMIGRATE", want: "database.autoMigrate"},
		{envKey: "CART_MAXUPSERTATTEMPTS", want: "cart.maxUpsertAttempts"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := `
env:
  serviceName: storefront
database:
  autoMigrate: false
cart:
  maxUpsertAttempts: 3
auth:
  tokenTTL: 30m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront.yaml"), []byte(yamlBody), 0o600))
	t.Chdir(dir)
	t.Setenv("DATABASE_AUTOMIGRATE", "true")
	t.Setenv("CART_MAXUPSERTATTEMPTS", "5")

	cfg, err := LoadWithEnv[Config]("storefront")
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.Env.ServiceName)
	assert.True(t, cfg.Database.AutoMigrate)
	require.NotNil(t, cfg.Cart)
	assert.Equal(t, 5, cfg.Cart.MaxUpsertAttempts)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "sha256", cfg.Auth.Hasher)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 12, cfg.Catalog.DefaultRecentCount)
	assert.Equal(t, 3, cfg.Cart.MaxUpsertAttempts)
}
