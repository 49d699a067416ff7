package core

import (
	"context"
	"errors"
	"time"
)

// ErrPhotoNotFound is returned by PhotoStore.Get for unknown ids.
var ErrPhotoNotFound = errors.New("photo not found")

type (
	// Photo is an encoded image saved to the library.
	Photo struct {
		ID          string    `json:"id"`
		ContentType string    `json:"content_type"`
		Width       int       `json:"width"`
		Height      int       `json:"height"`
		Data        []byte    `json:"-"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// PhotoStore persists exported images.
	PhotoStore interface {
		Save(ctx context.Context, photo *Photo) (string, error)
		Get(ctx context.Context, id string) (*Photo, error)
	}
)
