package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forenscan/internal/analysis"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "forensics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecords() []analysis.Record {
	return []analysis.Record{
		{
			Path:     "/evidence/a.txt",
			Hash:     "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4",
			Type:     "text/plain; charset=utf-8",
			Size:     2,
			Created:  "2026-08-20 10:00:00",
			Modified: "2026-08-20 10:00:01",
			Accessed: "2026-08-20 10:00:02",
		},
		{
			Path:     "/evidence/b.jpg",
			Hash:     "8b2ac19e1dc4b0c9851672b0a5b17c4a295c8a3dce041284c2e4ad1231a1f82e",
			Type:     "image/jpeg",
			Size:     128,
			Created:  "2026-08-20 11:00:00",
			Modified: "2026-08-20 11:00:01",
			Accessed: "2026-08-20 11:00:02",
			Exif: &analysis.ExifData{
				DateTime:  "2021:07:14 09:30:00",
				Latitude:  analysis.NotAvailable,
				Longitude: analysis.NotAvailable,
				Make:      "Canon",
				Model:     "X",
			},
		},
	}
}

func TestSaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	records := sampleRecords()

	require.NoError(t, store.SaveAll(ctx, records))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestSaveAllIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	records := sampleRecords()

	require.NoError(t, store.SaveAll(ctx, records))
	require.NoError(t, store.SaveAll(ctx, records))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 2, ExifRows: 1}, stats)
}

func TestSaveAllReplacesChangedRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	records := sampleRecords()

	require.NoError(t, store.SaveAll(ctx, records))

	records[0].Hash = "0000000000000000000000000000000000000000000000000000000000000000"
	records[1].Exif.Model = "Y"
	require.NoError(t, store.SaveAll(ctx, records))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, records[0].Hash, loaded[0].Hash)
	require.NotNil(t, loaded[1].Exif)
	assert.Equal(t, "Y", loaded[1].Exif.Model)
}

func TestLoadAllOrdersByPath(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	records := []analysis.Record{
		{Path: "/evidence/z.txt", Hash: "zz", Type: "text/plain; charset=utf-8", Size: 1},
		{Path: "/evidence/a.txt", Hash: "aa", Type: "text/plain; charset=utf-8", Size: 1},
	}
	require.NoError(t, store.SaveAll(ctx, records))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "/evidence/a.txt", loaded[0].Path)
	assert.Equal(t, "/evidence/z.txt", loaded[1].Path)
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "forensics.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("   ")
	require.Error(t, err)
}

func TestSaveAllEmptyBatch(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.SaveAll(ctx, nil))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}
