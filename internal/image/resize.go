package imagepkg

import (
	"math"

	"github.com/disintegration/imaging"
)

// ResizeToFit scales img so that it fits entirely inside target, keeping its
// aspect ratio. The result is rendered at scale 1. An image whose logical size
// already equals target is returned as an unchanged copy.
func ResizeToFit(img *RasterImage, target Size) (*RasterImage, error) {
	if img == nil {
		return nil, invalidImage(0, 0, "nil image")
	}
	src := img.Size()
	if !src.valid() {
		return nil, invalidImage(src.Width, src.Height, "source dimensions must be positive")
	}
	if !target.valid() {
		return nil, invalidImage(target.Width, target.Height, "target dimensions must be positive")
	}

	ratio := math.Min(target.Width/src.Width, target.Height/src.Height)
	if ratio == 1 {
		return &RasterImage{pix: toRGBA(img.pix), scale: img.scale}, nil
	}

	w := fitPixels(src.Width*ratio, target.Width)
	h := fitPixels(src.Height*ratio, target.Height)
	if w == img.Width() && h == img.Height() {
		return &RasterImage{pix: toRGBA(img.pix), scale: 1}, nil
	}
	out := imaging.Resize(img.pix, w, h, imaging.Lanczos)
	return &RasterImage{pix: toRGBA(out), scale: 1}, nil
}

// fitPixels rounds v to whole pixels without exceeding limit.
func fitPixels(v, limit float64) int {
	n := int(math.Round(v))
	if float64(n) > limit {
		n = int(math.Floor(limit))
	}
	if n < 1 {
		n = 1
	}
	return n
}
