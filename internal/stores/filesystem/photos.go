package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/core"
	"github.com/youruser/canvasapp/internal/util"
)

type photoStore struct {
	basePath string
}

// NewPhotoStore stores each photo as <id> with a <id>.json metadata sidecar.
func NewPhotoStore(basePath string) (core.PhotoStore, error) {
	if err := util.EnsureDir(basePath); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &photoStore{basePath: basePath}, nil
}

func (s *photoStore) Save(ctx context.Context, photo *core.Photo) (string, error) {
	id := ulid.Make().String()
	dataPath, metaPath := s.paths(id)
	log := logrus.WithFields(logrus.Fields{
		"photo_id":  id,
		"file_path": dataPath,
	})

	meta := *photo
	meta.ID = id
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(dataPath, photo.Data, 0o644); err != nil {
		log.WithError(err).Error("Failed to write photo")
		return "", err
	}
	if err := os.WriteFile(metaPath, b, 0o644); err != nil {
		log.WithError(err).Error("Failed to write photo metadata")
		_ = os.Remove(dataPath)
		return "", err
	}

	log.WithField("data_length", len(photo.Data)).Info("Photo saved successfully")
	return id, nil
}

func (s *photoStore) Get(ctx context.Context, id string) (*core.Photo, error) {
	log := logrus.WithField("photo_id", id)
	if _, err := ulid.ParseStrict(id); err != nil {
		log.Warn("Rejected malformed photo id")
		return nil, fmt.Errorf("photo %s: %w", id, core.ErrPhotoNotFound)
	}
	dataPath, metaPath := s.paths(id)

	b, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Photo with specified ID not found")
			return nil, fmt.Errorf("photo %s: %w", id, core.ErrPhotoNotFound)
		}
		log.WithError(err).Error("Failed to read photo metadata")
		return nil, err
	}
	var photo core.Photo
	if err := json.Unmarshal(b, &photo); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", id, err)
	}
	if photo.Data, err = os.ReadFile(dataPath); err != nil {
		log.WithError(err).Error("Failed to read photo")
		return nil, err
	}
	return &photo, nil
}

func (s *photoStore) paths(id string) (data, meta string) {
	data = filepath.Join(s.basePath, id)
	return data, data + ".json"
}
