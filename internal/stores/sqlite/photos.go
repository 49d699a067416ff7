package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/youruser/canvasapp/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS photos (
	id TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	data BLOB NOT NULL,
	created_at INTEGER NOT NULL
);`

type photoStore struct {
	db *sql.DB
}

// NewPhotoStore opens dataSourceName and creates the photos table.
func NewPhotoStore(dataSourceName string) (core.PhotoStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create photos table: %w", err)
	}
	return &photoStore{db: db}, nil
}

func (s *photoStore) Save(ctx context.Context, photo *core.Photo) (string, error) {
	id := ulid.Make().String()
	created := photo.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	log := logrus.WithFields(logrus.Fields{
		"photo_id":    id,
		"data_length": len(photo.Data),
	})

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO photos (id, content_type, width, height, data, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, photo.ContentType, photo.Width, photo.Height, photo.Data, created.UnixMilli())
	if err != nil {
		log.WithError(err).Error("Failed to save photo")
		return "", err
	}

	log.Info("Photo saved successfully")
	return id, nil
}

func (s *photoStore) Get(ctx context.Context, id string) (*core.Photo, error) {
	log := logrus.WithField("photo_id", id)

	var (
		photo   = core.Photo{ID: id}
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT content_type, width, height, data, created_at FROM photos WHERE id = ?", id).
		Scan(&photo.ContentType, &photo.Width, &photo.Height, &photo.Data, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Photo with specified ID not found")
			return nil, fmt.Errorf("photo %s: %w", id, core.ErrPhotoNotFound)
		}
		log.WithError(err).Error("Failed to retrieve photo")
		return nil, err
	}
	photo.CreatedAt = time.UnixMilli(created).UTC()
	return &photo, nil
}

// Close releases the database handle.
func (s *photoStore) Close() error {
	return s.db.Close()
}
