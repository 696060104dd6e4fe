package db

import (
	"path/filepath"
	"testing"

	"github.com/NammaLakes/dashboard/internal/config"
	"github.com/NammaLakes/dashboard/internal/db/repository"
	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("Should open and migrate SQLite", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "cache.db"),
		}

		database, err := NewDatabase(cfg, utils.NewNopLogger())
		require.NoError(t, err)
		defer database.Close()

		require.NoError(t, database.AutoMigrate())

		repo := repository.NewRepositoryFactory(database.DB).Cache()
		require.NoError(t, repo.Put("lakewatcher-sensor-nodes", []byte(`{"N1":{}}`)))

		got, err := repo.Get("lakewatcher-sensor-nodes")
		require.NoError(t, err)
		assert.JSONEq(t, `{"N1":{}}`, string(got))
	})

	t.Run("Should reject an unknown driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "memory"}, utils.NewNopLogger())
		assert.Error(t, err)
	})
}
