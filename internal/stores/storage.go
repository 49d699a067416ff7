package stores

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/config"
	"github.com/youruser/canvasapp/internal/core"
	"github.com/youruser/canvasapp/internal/stores/filesystem"
	"github.com/youruser/canvasapp/internal/stores/memory"
	"github.com/youruser/canvasapp/internal/stores/s3"
	"github.com/youruser/canvasapp/internal/stores/sqlite"
)

// GetStore builds the photo library selected by cfg.StorageType.
func GetStore(ctx context.Context, cfg config.Config) (core.PhotoStore, error) {
	storageField := logrus.Fields{
		"storageType": cfg.StorageType,
	}

	var (
		store core.PhotoStore
		err   error
	)
	switch cfg.StorageType {
	case "filesystem":
		storageField["basePath"] = cfg.LocalStoragePath
		store, err = filesystem.NewPhotoStore(cfg.LocalStoragePath)
	case "sqlite":
		storageField["dataSourceName"] = cfg.DataSourceName
		store, err = sqlite.NewPhotoStore(cfg.DataSourceName)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("storage type s3 requires S3_BUCKET")
		}
		storageField["bucket"] = cfg.S3Bucket
		store, err = s3.NewPhotoStore(ctx, cfg.S3Bucket, cfg.S3Prefix)
	case "", "memory":
		storageField["storageType"] = "in-memory"
		store = memory.NewPhotoStore()
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store, nil
}
