package postgres_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/testutil/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkCatalog(t *testing.T, seed bool) (postgres.CatalogStats, map[string]any) {
	t.Helper()

	db := dbtest.Open(t)
	if seed {
		dbtest.SeedCatalog(t, db)
	}

	var buf bytes.Buffer
	stats, err := postgres.CheckCatalog(context.Background(), db, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return stats, record
}

func TestCheckCatalog_Seeded(t *testing.T) {
	stats, record := checkCatalog(t, true)

	assert.Equal(t, postgres.CatalogStats{Categories: 2, Products: 5}, stats)
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "Storefront catalog ready", record["msg"])
	assert.EqualValues(t, 5, record["products"])
}

func TestCheckCatalog_EmptyIsWarning(t *testing.T) {
	stats, record := checkCatalog(t, false)

	assert.Zero(t, stats.Products)
	assert.Equal(t, "WARN", record["level"])
	assert.EqualValues(t, 0, record["categories"])
}
