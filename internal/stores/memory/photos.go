package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/core"
)

type photoStore struct {
	mu     sync.RWMutex
	photos map[string]core.Photo
}

func NewPhotoStore() core.PhotoStore {
	return &photoStore{photos: make(map[string]core.Photo)}
}

func (s *photoStore) Save(ctx context.Context, photo *core.Photo) (string, error) {
	id := ulid.Make().String()
	p := *photo
	p.ID = id
	p.Data = append([]byte(nil), photo.Data...)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.photos[id] = p
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"photo_id":    id,
		"data_length": len(p.Data),
	}).Info("Photo saved successfully")
	return id, nil
}

func (s *photoStore) Get(ctx context.Context, id string) (*core.Photo, error) {
	s.mu.RLock()
	p, ok := s.photos[id]
	s.mu.RUnlock()

	if !ok {
		logrus.WithField("photo_id", id).Warn("Photo with specified ID not found")
		return nil, fmt.Errorf("photo %s: %w", id, core.ErrPhotoNotFound)
	}
	p.Data = append([]byte(nil), p.Data...)
	return &p, nil
}
