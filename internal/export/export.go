// Package export turns a composition request into a saved photo.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/core"
	imagepkg "github.com/youruser/canvasapp/internal/image"
)

const (
	// ConfirmationTitle and ConfirmationMessage are shown after a save succeeds.
	ConfirmationTitle   = "Great Drawing!"
	ConfirmationMessage = "Your drawing has been saved to your camera roll!"
)

// PersistenceError reports that an encoded image could not be stored.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Result is the outcome of one save.
type Result struct {
	ID  string
	Err error
}

// Pending is an in-flight save.
type Pending struct {
	image *imagepkg.RasterImage
	done  chan Result
}

// Image is the composed image being saved.
func (p *Pending) Image() *imagepkg.RasterImage { return p.image }

// Wait blocks until the save finishes or ctx is done. The save itself keeps
// running if ctx ends first.
func (p *Pending) Wait(ctx context.Context) Result {
	select {
	case r := <-p.done:
		return r
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}

// Exporter composes drawings and writes them to a photo library.
type Exporter struct {
	store  core.PhotoStore
	format imaging.Format
}

// New returns an Exporter writing PNG files to store.
func New(store core.PhotoStore) *Exporter {
	return &Exporter{store: store, format: imaging.PNG}
}

// Export composes req synchronously, then starts saving the result. A
// composition failure is returned directly and nothing is saved.
func (e *Exporter) Export(ctx context.Context, req imagepkg.CompositionRequest) (*Pending, error) {
	img, err := imagepkg.Compose(req)
	if err != nil {
		return nil, err
	}
	return e.Save(ctx, img), nil
}

// Save writes img once in the background. There are no retries. The write is
// detached from ctx cancellation so an abandoned wait does not abort it.
func (e *Exporter) Save(ctx context.Context, img *imagepkg.RasterImage) *Pending {
	p := &Pending{image: img, done: make(chan Result, 1)}
	ctx = context.WithoutCancel(ctx)
	go func() {
		id, err := e.save(ctx, img)
		p.done <- Result{ID: id, Err: err}
	}()
	return p
}

func (e *Exporter) save(ctx context.Context, img *imagepkg.RasterImage) (string, error) {
	log := logrus.WithFields(logrus.Fields{
		"width":  img.Width(),
		"height": img.Height(),
	})

	var buf bytes.Buffer
	if err := img.Encode(&buf, e.format); err != nil {
		log.WithError(err).Error("Failed to encode export")
		return "", &PersistenceError{Op: "encode", Err: err}
	}
	id, err := e.store.Save(ctx, &core.Photo{
		ContentType: contentType(e.format),
		Width:       img.Width(),
		Height:      img.Height(),
		Data:        buf.Bytes(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to save export")
		return "", &PersistenceError{Op: "save", Err: err}
	}
	log.WithField("photo_id", id).Info("Export saved")
	return id, nil
}

func contentType(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}
