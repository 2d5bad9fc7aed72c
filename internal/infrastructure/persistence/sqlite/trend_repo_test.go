package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/servio/internal/infrastructure/persistence/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func TestTrendRepo_BumpCreatesAndAccumulates(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "plumber", 3))
	require.NoError(t, repo.Bump(ctx, "plumber", 2))

	entry, err := repo.FindByTerm(ctx, "plumber")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(5), entry.Weight)
}

func TestTrendRepo_SearchPrefixRanking(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "plumbing supplies", 40))
	require.NoError(t, repo.Bump(ctx, "plumber", 100))
	require.NoError(t, repo.Bump(ctx, "electrician", 200))

	got, err := repo.SearchPrefix(ctx, "plumb", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "plumber", got[0].Text)
	assert.Equal(t, int64(100), got[0].Weight)
	assert.Equal(t, "plumbing supplies", got[1].Text)
}

func TestTrendRepo_SearchPrefixTieBreaksAlphabetically(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "painter", 10))
	require.NoError(t, repo.Bump(ctx, "paver", 10))
	require.NoError(t, repo.Bump(ctx, "paralegal", 10))

	got, err := repo.SearchPrefix(ctx, "pa", 5)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "painter", got[0].Text)
	assert.Equal(t, "paralegal", got[1].Text)
	assert.Equal(t, "paver", got[2].Text)
}

func TestTrendRepo_SearchPrefixRespectsLimit(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	for i, term := range []string{"pa", "pb", "pc", "pd"} {
		require.NoError(t, repo.Bump(ctx, term, int64(10-i)))
	}

	got, err := repo.SearchPrefix(ctx, "p", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pa", got[0].Text)
	assert.Equal(t, "pb", got[1].Text)
}

func TestTrendRepo_SearchPrefixEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "100% organic", 10))
	require.NoError(t, repo.Bump(ctx, "100 dollar store", 10))

	// A literal "%" in the prefix must not act as a wildcard.
	got, err := repo.SearchPrefix(ctx, "100%", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% organic", got[0].Text)
}

func TestTrendRepo_FindByTermMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)

	entry, err := repo.FindByTerm(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTrendRepo_Top(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "plumber", 100))
	require.NoError(t, repo.Bump(ctx, "electrician", 200))
	require.NoError(t, repo.Bump(ctx, "gardener", 50))

	entries, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "electrician", entries[0].Term)
	assert.Equal(t, "plumber", entries[1].Term)
}

func TestTrendRepo_DeleteOlderThan(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Bump(ctx, "plumber", 1))
	require.NoError(t, repo.Bump(ctx, "gardener", 1))

	// Everything was just written, so a cutoff in the past removes nothing.
	removed, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// A cutoff in the future removes both.
	removed, err = repo.DeleteOlderThan(ctx, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTerms)
}

func TestTrendRepo_GetStats(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTrendRepository(db)
	ctx := context.Background()

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTerms)
	assert.Zero(t, stats.TotalWeight)

	require.NoError(t, repo.Bump(ctx, "plumber", 100))
	require.NoError(t, repo.Bump(ctx, "gardener", 50))

	stats, err = repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalTerms)
	assert.Equal(t, int64(150), stats.TotalWeight)
}
