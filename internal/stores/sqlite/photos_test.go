package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/canvasapp/internal/core"
)

func newStore(t *testing.T) core.PhotoStore {
	t.Helper()
	store, err := NewPhotoStore(filepath.Join(t.TempDir(), "photos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.(io.Closer).Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	id, err := store.Save(ctx, &core.Photo{
		ContentType: "image/png",
		Width:       1540,
		Height:      2400,
		Data:        []byte{0x89, 'P', 'N', 'G'},
		CreatedAt:   created,
	})
	require.NoError(t, err)
	assert.Len(t, id, 26)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, 1540, got.Width)
	assert.Equal(t, 2400, got.Height)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got.Data)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestGet_NotFound(t *testing.T) {
	_, err := newStore(t).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrPhotoNotFound)
}

func TestNewPhotoStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photos.db")
	ctx := context.Background()

	first, err := NewPhotoStore(path)
	require.NoError(t, err)
	id, err := first.Save(ctx, &core.Photo{ContentType: "image/png", Data: []byte("a")})
	require.NoError(t, err)
	require.NoError(t, first.(io.Closer).Close())

	second, err := NewPhotoStore(path)
	require.NoError(t, err)
	defer second.(io.Closer).Close()
	got, err := second.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got.Data)
}
