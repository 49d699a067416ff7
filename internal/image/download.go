package imagepkg

import (
	"context"
	"fmt"

	"github.com/youruser/canvasapp/internal/util"
)

// maxPhotoBytes caps remote photo downloads.
const maxPhotoBytes = 32 << 20

// FetchPhoto downloads and decodes a photo from url. An empty url means the
// pick was cancelled.
func FetchPhoto(ctx context.Context, url string, scale float64) (*RasterImage, error) {
	if url == "" {
		return nil, ErrPickCancelled
	}
	body, err := util.GetBytes(ctx, url, maxPhotoBytes)
	if err != nil {
		return nil, err
	}
	img, err := DecodePhoto(body, scale)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}
