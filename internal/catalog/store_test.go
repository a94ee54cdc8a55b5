package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomc271/jcamp/internal/spectrum"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry(origin string) Entry {
	firstx, lastx := 400.0, 410.0
	return Entry{
		ID:        "id-" + origin,
		Origin:    origin,
		Title:     "Ethylene",
		DataType:  "INFRARED SPECTRUM",
		XUnits:    "1/CM",
		YUnits:    "TRANSMITTANCE",
		NPoints:   6,
		FirstX:    &firstx,
		LastX:     &lastx,
		IndexedAt: time.Now().UTC(),
	}
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an existing database applies the schema idempotently.
	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestUpsertAndByOrigin(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e := sampleEntry("a.jdx")
	require.NoError(t, store.Upsert(ctx, e))

	got, err := store.ByOrigin(ctx, "a.jdx")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "Ethylene", got.Title)
	assert.Equal(t, 6, got.NPoints)
	require.NotNil(t, got.FirstX)
	assert.Equal(t, 400.0, *got.FirstX)
	assert.WithinDuration(t, e.IndexedAt, got.IndexedAt, time.Second)
}

func TestByOrigin_NotFound(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ByOrigin(context.Background(), "missing.jdx")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpsert_RefreshesExistingOrigin(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := sampleEntry("a.jdx")
	require.NoError(t, store.Upsert(ctx, first))

	second := sampleEntry("a.jdx")
	second.ID = "different-id"
	second.Title = "Ethylene (reprocessed)"
	require.NoError(t, store.Upsert(ctx, second))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.ByOrigin(ctx, "a.jdx")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Re-indexing keeps the original row id but refreshes the summary.
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Ethylene (reprocessed)", got.Title)
}

func TestSearchTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := sampleEntry("a.jdx")
	a.Title = "Methane"
	b := sampleEntry("b.jdx")
	b.Title = "Ethane"
	c := sampleEntry("c.jdx")
	c.Title = "Benzene"
	for _, e := range []Entry{a, b, c} {
		require.NoError(t, store.Upsert(ctx, e))
	}

	got, err := store.SearchTitle(ctx, "ane")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ethane", got[0].Title)
	assert.Equal(t, "Methane", got[1].Title)

	got, err = store.SearchTitle(ctx, "xylene")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntryFromRecord(t *testing.T) {
	rec := spectrum.New()
	rec.SetHeader("title", spectrum.Str("Ethylene"))
	rec.SetHeader("data type", spectrum.Str("INFRARED SPECTRUM"))
	rec.SetHeader("xunits", spectrum.Str("1/CM"))
	rec.SetHeader("yunits", spectrum.Str("TRANSMITTANCE"))
	rec.SetHeader("firstx", spectrum.Float(400))
	rec.Y = []float64{1, 2, 3}
	rec.Children = []*spectrum.Record{spectrum.New()}

	e := EntryFromRecord("dir/a.jdx", rec)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "dir/a.jdx", e.Origin)
	assert.Equal(t, "Ethylene", e.Title)
	assert.Equal(t, "INFRARED SPECTRUM", e.DataType)
	assert.Equal(t, 3, e.NPoints)
	assert.Equal(t, 1, e.Children)
	require.NotNil(t, e.FirstX)
	assert.Equal(t, 400.0, *e.FirstX)
	assert.Nil(t, e.LastX)
	assert.False(t, e.IndexedAt.IsZero())
}
