package imagepkg

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// FilterFunc transforms pixels. Implementations must not change the bounds.
type FilterFunc func(img image.Image) (image.Image, error)

// noirContrast is the contrast boost applied after desaturation.
const noirContrast = 30

// Noir is a desaturated, high-contrast rendition.
func Noir(img image.Image) (image.Image, error) {
	gray := imaging.Grayscale(img)
	return imaging.AdjustContrast(gray, noirContrast), nil
}

// ApplyMonochromeFilter runs filter (Noir when nil) over img. The filter is
// cosmetic: on any failure the input is returned unchanged.
func ApplyMonochromeFilter(img *RasterImage, filter FilterFunc) *RasterImage {
	if img == nil {
		return nil
	}
	if filter == nil {
		filter = Noir
	}
	out, err := runFilter(filter, img)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"width":  img.Width(),
			"height": img.Height(),
		}).Warn("monochrome filter failed, keeping original image")
		return img
	}
	return out
}

func runFilter(filter FilterFunc, img *RasterImage) (out *RasterImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("filter panicked: %v", r)
		}
	}()

	res, err := filter(img.Image())
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("filter returned no image")
	}
	if res.Bounds().Size() != img.pix.Rect.Size() {
		return nil, fmt.Errorf("filter changed size from %v to %v", img.pix.Rect.Size(), res.Bounds().Size())
	}
	return &RasterImage{pix: toRGBA(res), scale: img.scale}, nil
}
