package services

import (
	"path/filepath"
	"testing"

	"github.com/meridian-press/chronicle/pkg/internal/cache"
	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupTest(t *testing.T) {
	t.Helper()
	setupTestWithNaming(t, schema.NamingStrategy{})
}

func setupTestWithNaming(t *testing.T, naming schema.NamingStrategy) {
	t.Helper()

	require.NoError(t, cache.NewStore())

	conn, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			NamingStrategy: naming,
		},
	)
	require.NoError(t, err)

	database.C = conn
	require.NoError(t, database.RunMigration(database.C))
}

func mustAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := NewAccount(name, name, name+"@example.com", "secret123")
	require.NoError(t, err)
	return account
}
