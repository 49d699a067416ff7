package imagepkg

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// InkLayer is a vector ink source that can rasterize itself.
type InkLayer interface {
	// RenderToImage renders the part of the layer inside rect at scale.
	RenderToImage(rect Rect, scale float64) (*RasterImage, error)
}

// CompositionRequest describes one export: the optional background photo,
// the ink drawn on top of it, and the canvas it is laid out on.
type CompositionRequest struct {
	Background  *RasterImage
	Ink         InkLayer
	CanvasSize  Size
	ExportScale float64
}

// PixelSize returns the output dimensions in pixels.
func (r CompositionRequest) PixelSize() (int, int) {
	return pixels(r.CanvasSize.Width, r.ExportScale), pixels(r.CanvasSize.Height, r.ExportScale)
}

// Compose layers the ink over the vertically centered background on a
// transparent canvas of CanvasSize*ExportScale pixels.
func Compose(req CompositionRequest) (*RasterImage, error) {
	if !req.CanvasSize.valid() {
		return nil, invalidImage(req.CanvasSize.Width, req.CanvasSize.Height, "canvas dimensions must be positive")
	}
	if !positive(req.ExportScale) {
		return nil, invalidImage(req.CanvasSize.Width, req.CanvasSize.Height, "export scale must be positive")
	}
	w, h := req.PixelSize()
	if w < 1 || h < 1 {
		return nil, invalidImage(req.CanvasSize.Width, req.CanvasSize.Height, "canvas is smaller than one pixel")
	}
	if req.Ink == nil {
		return nil, &RenderFailure{Layer: "ink", Err: errors.New("no ink layer")}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	if req.Background != nil {
		drawBackground(canvas, req.Background, req.CanvasSize, req.ExportScale)
	}

	full := Rect{Width: req.CanvasSize.Width, Height: req.CanvasSize.Height}
	ink, err := req.Ink.RenderToImage(full, req.ExportScale)
	if err != nil {
		return nil, &RenderFailure{Layer: "ink", Err: err}
	}
	if ink == nil || ink.pix == nil || ink.pix.Rect.Empty() {
		return nil, &RenderFailure{Layer: "ink"}
	}
	if ink.Width() == w && ink.Height() == h {
		draw.Draw(canvas, canvas.Bounds(), ink.pix, image.Point{}, draw.Over)
	} else {
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), ink.pix, ink.pix.Bounds(), draw.Over, nil)
	}

	return &RasterImage{pix: canvas, scale: req.ExportScale}, nil
}

// drawBackground draws bg at its logical size, x=0, centered on the canvas's
// vertical midline. Pixels are resampled only when the scales differ.
func drawBackground(dst *image.RGBA, bg *RasterImage, canvas Size, scale float64) {
	size := bg.Size()
	y := canvas.Height/2 - size.Height/2
	origin := image.Pt(0, pixels(y, scale))

	if bg.scale == scale {
		r := image.Rectangle{Min: origin, Max: origin.Add(bg.pix.Rect.Size())}
		draw.Draw(dst, r, bg.pix, image.Point{}, draw.Over)
		return
	}
	r := image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(pixels(size.Width, scale), pixels(size.Height, scale))),
	}
	draw.CatmullRom.Scale(dst, r, bg.pix, bg.pix.Bounds(), draw.Over, nil)
}
