package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	f := feedWithGame("2025-06-03", "evt-1",
		time.Date(2025, 6, 3, 23, 10, 0, 0, time.UTC), prop("J. Doe"))

	require.NoError(t, store.Save(ctx, "2025-06-03", f))

	got, err := store.Load(ctx, "2025-06-03")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, f.Metadata.Date, got.Metadata.Date)
	require.Len(t, got.Games, 1)
	assert.Equal(t, "evt-1", got.Games[0].EventID)
	assert.Equal(t, "J. Doe", got.Games[0].Pitchers[0].PitcherName)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	got, err := store.Load(context.Background(), "2025-06-03")
	require.NoError(t, err)
	assert.Nil(t, got, "absent date must be (nil, nil), not an error")
}

func TestFileStore_CreatesDir(t *testing.T) {
	store := NewFileStore(t.TempDir() + "/nested/cache")

	err := store.Save(context.Background(), "2025-06-03", &Feed{})
	require.NoError(t, err)
}
