// Package canvas sizes the scrollable drawing area around the ink.
package canvas

import (
	"math"
	"sync"

	imagepkg "github.com/youruser/canvasapp/internal/image"
	"github.com/youruser/canvasapp/internal/ink"
)

const (
	// Width is the fixed logical canvas width in points.
	Width = 770
	// OverscrollHeight is the blank space kept below the lowest stroke.
	OverscrollHeight = 500
)

// ZoomScale fits the canvas width to a view of viewWidth points.
func ZoomScale(viewWidth float64) float64 {
	if !(viewWidth > 0) {
		return 1
	}
	return viewWidth / Width
}

// ContentSize is the scrollable content extent for d in a view of the given
// bounds at zoom.
func ContentSize(d ink.Drawing, view imagepkg.Size, zoom float64) imagepkg.Size {
	height := view.Height
	if b, ok := d.Bounds(); ok {
		height = math.Max(view.Height, (b.MaxY()+OverscrollHeight)*zoom)
	}
	return imagepkg.Size{Width: Width * zoom, Height: height}
}

// CenterOffset centers content smaller than the view; it is zero on any
// axis where the content already fills the view.
func CenterOffset(view, content imagepkg.Size) ink.Point {
	return ink.Point{
		X: math.Max((view.Width-content.Width)*0.5, 0),
		Y: math.Max((view.Height-content.Height)*0.5, 0),
	}
}

// Layout tracks the content size of a surface as strokes change.
type Layout struct {
	mu      sync.RWMutex
	view    imagepkg.Size
	zoom    float64
	content imagepkg.Size
}

// NewLayout sizes s for a view and recomputes on every stroke change.
func NewLayout(s *ink.Surface, view imagepkg.Size) *Layout {
	l := &Layout{view: view, zoom: ZoomScale(view.Width)}
	l.update(s.Drawing())
	s.OnChange(l.update)
	return l
}

func (l *Layout) update(d ink.Drawing) {
	l.mu.Lock()
	l.content = ContentSize(d, l.view, l.zoom)
	l.mu.Unlock()
}

// Zoom returns the current zoom scale.
func (l *Layout) Zoom() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zoom
}

// ContentSize returns the latest content size.
func (l *Layout) ContentSize() imagepkg.Size {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.content
}

// Offset returns the centering offset for the current content.
func (l *Layout) Offset() ink.Point {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return CenterOffset(l.view, l.content)
}
