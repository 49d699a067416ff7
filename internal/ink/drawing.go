// Package ink holds vector strokes captured on the canvas and rasterizes
// them for export.
package ink

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	imagepkg "github.com/youruser/canvasapp/internal/image"
)

// DefaultColor is used for strokes without a colour.
const DefaultColor = "#000000"

// Point is a position in canvas points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen movement.
type Stroke struct {
	Points []Point `json:"points"`
	Width  float64 `json:"width"`
	Color  string  `json:"color,omitempty"`
}

// Drawing is an ordered list of strokes; later strokes paint over earlier ones.
type Drawing struct {
	Strokes []Stroke `json:"strokes"`
}

var _ imagepkg.InkLayer = Drawing{}

// Bounds returns the area touched by the strokes, including line width.
// ok is false for a drawing with no points.
func (d Drawing) Bounds() (r imagepkg.Rect, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range d.Strokes {
		half := s.Width / 2
		for _, p := range s.Points {
			minX = math.Min(minX, p.X-half)
			minY = math.Min(minY, p.Y-half)
			maxX = math.Max(maxX, p.X+half)
			maxY = math.Max(maxY, p.Y+half)
		}
	}
	if math.IsInf(minX, 1) {
		return imagepkg.Rect{}, false
	}
	return imagepkg.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// RenderToImage rasterizes the part of the drawing inside rect into a
// transparent image of rect*scale pixels.
func (d Drawing) RenderToImage(rect imagepkg.Rect, scale float64) (*imagepkg.RasterImage, error) {
	if !finite(rect.X) || !finite(rect.Y) || !(rect.Width > 0) || !(rect.Height > 0) ||
		!finite(rect.Width) || !finite(rect.Height) {
		return nil, fmt.Errorf("ink: cannot render into rect %+v", rect)
	}
	if !(scale > 0) || !finite(scale) {
		return nil, fmt.Errorf("ink: invalid scale %g", scale)
	}
	w := int(math.Round(rect.Width * scale))
	h := int(math.Round(rect.Height * scale))
	if w < 1 || h < 1 {
		return nil, errors.New("ink: render area is smaller than one pixel")
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, s := range d.Strokes {
		if err := drawStroke(dc, s, rect, scale); err != nil {
			return nil, fmt.Errorf("ink: stroke %d: %w", i, err)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("ink: flush: %w", err)
	}
	return imagepkg.NewRaster(dc.Image(), scale)
}

func drawStroke(dc *gg.Context, s Stroke, rect imagepkg.Rect, scale float64) error {
	if len(s.Points) == 0 || !(s.Width > 0) {
		return nil
	}
	color := s.Color
	if color == "" {
		color = DefaultColor
	}
	dc.SetHexColor(color)

	at := func(p Point) (float64, float64) {
		return (p.X - rect.X) * scale, (p.Y - rect.Y) * scale
	}
	width := s.Width * scale

	if len(s.Points) == 1 {
		x, y := at(s.Points[0])
		dc.DrawCircle(x, y, width/2)
		return dc.Fill()
	}

	dc.SetLineWidth(width)
	x, y := at(s.Points[0])
	dc.MoveTo(x, y)
	for _, p := range s.Points[1:] {
		x, y = at(p)
		dc.LineTo(x, y)
	}
	return dc.Stroke()
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
