package zones

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func newTestResolver(t *testing.T, dir string) *Resolver {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewResolver(ResolverConfig{Catalog: catalog, ZoneinfoDir: dir, Year: 2024})
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t, t.TempDir())
	ctx := testContext(t)

	z, err := r.Resolve(ctx, "America/Denver")
	require.NoError(t, err)
	assert.Equal(t, "Mountain Standard Time", z.StandardName)

	again, err := r.Resolve(ctx, "America/Denver")
	require.NoError(t, err)
	assert.Same(t, z, again)

	utc, err := r.Resolve(ctx, "UTC")
	require.NoError(t, err)
	assert.Equal(t, 0, utc.BaseOffsetMinutes())

	_, err = r.Resolve(ctx, "Local")
	assert.NoError(t, err)
}

func TestResolver_ResolveUnknown(t *testing.T) {
	r := newTestResolver(t, t.TempDir())

	_, err := r.Resolve(testContext(t), "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrZoneNotFound)

	_, err = r.Resolve(testContext(t), "")
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestResolver_ListWalksZoneinfo(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Asia/Tokyo",
		"America/Denver",
		"Bogus/Zone",
		"zone.tab",
		"posix/Europe/Paris",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	list, err := newTestResolver(t, dir).List(testContext(t))
	require.NoError(t, err)

	var ids []string
	for _, z := range list {
		ids = append(ids, z.ID)
	}
	assert.Equal(t, []string{"America/Denver", "Asia/Tokyo"}, ids)
}

func TestResolver_ListFallsBackToCatalog(t *testing.T) {
	r := newTestResolver(t, filepath.Join(t.TempDir(), "absent"))

	list, err := r.List(testContext(t))
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, "Etc/GMT+12", list[0].ID)
	assert.Equal(t, "Pacific/Kiritimati", list[len(list)-1].ID)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].SortKey(), list[i].SortKey())
	}
}
