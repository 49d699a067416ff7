package stores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/canvasapp/internal/config"
	"github.com/youruser/canvasapp/internal/core"
)

func TestGetStore(t *testing.T) {
	dir := t.TempDir()
	for _, typ := range []string{"", "memory", "filesystem", "sqlite"} {
		t.Run("type="+typ, func(t *testing.T) {
			cfg := config.Default()
			cfg.StorageType = typ
			cfg.LocalStoragePath = filepath.Join(dir, "fs")
			cfg.DataSourceName = filepath.Join(dir, typ+".db")

			store, err := GetStore(context.Background(), cfg)
			require.NoError(t, err)

			ctx := context.Background()
			id, err := store.Save(ctx, &core.Photo{ContentType: "image/png", Data: []byte("x")})
			require.NoError(t, err)
			got, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, []byte("x"), got.Data)
		})
	}
}

func TestGetStore_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.StorageType = "tape"
	_, err := GetStore(context.Background(), cfg)
	assert.Error(t, err)

	cfg.StorageType = "s3"
	_, err = GetStore(context.Background(), cfg)
	assert.ErrorContains(t, err, "S3_BUCKET")
}
