package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/keyed/internal/catalog"
)

func openSeeded(t *testing.T) *catalog.SQLiteRepository {
	t.Helper()
	repo, err := catalog.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Release(context.Background()) })

	require.NoError(t, repo.Seed(context.Background(), catalog.SeedCategories(), catalog.SeedPies()))
	return repo
}

func TestSQLiteRepositoryMatchesSeedData(t *testing.T) {
	repo := openSeeded(t)

	pies, err := repo.Pies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.SeedPies(), pies)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.SeedCategories(), categories)
}

func TestSQLiteRepositoryPiesOfTheWeek(t *testing.T) {
	repo := openSeeded(t)

	week, err := repo.PiesOfTheWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 3)
	for _, p := range week {
		assert.True(t, p.PieOfTheWeek)
	}
}

func TestSQLiteRepositoryPieByID(t *testing.T) {
	repo := openSeeded(t)

	pie, err := repo.PieByID(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "Pumpkin Pie", pie.Name)

	_, err = repo.PieByID(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrPieNotFound)
}

func TestSQLiteSeedIsIdempotent(t *testing.T) {
	repo := openSeeded(t)
	require.NoError(t, repo.Seed(context.Background(), catalog.SeedCategories(), catalog.SeedPies()))

	pies, err := repo.Pies(context.Background())
	require.NoError(t, err)
	assert.Len(t, pies, 11)
}
