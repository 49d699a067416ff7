package imagepkg

import (
	"bytes"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Size is a width/height pair in logical points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Scale returns s multiplied by f on both axes.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

func (s Size) valid() bool {
	return positive(s.Width) && positive(s.Height)
}

// Rect is an axis-aligned rectangle in logical points.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// RasterImage is an immutable pixel buffer with a device scale factor.
// Pixels are stored premultiplied; no method hands out the backing buffer.
type RasterImage struct {
	pix   *image.RGBA
	scale float64
}

// NewRaster copies img into a new RasterImage at the given scale.
func NewRaster(img image.Image, scale float64) (*RasterImage, error) {
	if img == nil {
		return nil, invalidImage(0, 0, "nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, invalidImage(float64(b.Dx()), float64(b.Dy()), "empty bounds")
	}
	if !positive(scale) {
		return nil, invalidImage(float64(b.Dx()), float64(b.Dy()), "scale must be positive")
	}
	return &RasterImage{pix: toRGBA(img), scale: scale}, nil
}

// Width is the pixel width.
func (r *RasterImage) Width() int { return r.pix.Rect.Dx() }

// Height is the pixel height.
func (r *RasterImage) Height() int { return r.pix.Rect.Dy() }

// Scale is the device pixel density multiplier.
func (r *RasterImage) Scale() float64 { return r.scale }

// Size returns the logical size, i.e. pixels divided by scale.
func (r *RasterImage) Size() Size {
	return Size{
		Width:  float64(r.Width()) / r.scale,
		Height: float64(r.Height()) / r.scale,
	}
}

// Image returns a copy of the pixels.
func (r *RasterImage) Image() *image.RGBA {
	return toRGBA(r.pix)
}

// Equal reports whether both images have identical pixels and scale.
func (r *RasterImage) Equal(o *RasterImage) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.scale == o.scale &&
		r.pix.Rect.Size() == o.pix.Rect.Size() &&
		bytes.Equal(r.pix.Pix, o.pix.Pix)
}

// Encode writes the image in the requested format.
func (r *RasterImage) Encode(w io.Writer, format imaging.Format) error {
	return imaging.Encode(w, r.pix, format)
}

// Decode reads an image, applying EXIF orientation, and tags it with scale.
func Decode(rd io.Reader, scale float64) (*RasterImage, error) {
	img, err := imaging.Decode(rd, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return NewRaster(img, scale)
}

// DecodePhoto decodes raw picked photo bytes.
func DecodePhoto(b []byte, scale float64) (*RasterImage, error) {
	if len(b) == 0 {
		return nil, ErrPickCancelled
	}
	return Decode(bytes.NewReader(b), scale)
}

// toRGBA copies img into a fresh zero-origin RGBA buffer.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// pixels converts a logical length at scale to a pixel count.
func pixels(v, scale float64) int {
	return int(math.Round(v * scale))
}
