package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	imagepkg "github.com/youruser/canvasapp/internal/image"
	"github.com/youruser/canvasapp/internal/ink"
)

func TestZoomScale(t *testing.T) {
	assert.Equal(t, 1.0, ZoomScale(770))
	assert.InDelta(t, 1024.0/770, ZoomScale(1024), 1e-12)
	assert.Equal(t, 1.0, ZoomScale(0))
}

func TestContentSize(t *testing.T) {
	view := imagepkg.Size{Width: 770, Height: 1000}

	got := ContentSize(ink.Drawing{}, view, 1)
	assert.Equal(t, imagepkg.Size{Width: 770, Height: 1000}, got)

	deep := ink.Drawing{Strokes: []ink.Stroke{{Points: []ink.Point{{X: 10, Y: 900}}, Width: 20}}}
	got = ContentSize(deep, view, 2)
	assert.Equal(t, imagepkg.Size{Width: 1540, Height: (910 + OverscrollHeight) * 2}, got)

	shallow := ink.Drawing{Strokes: []ink.Stroke{{Points: []ink.Point{{X: 10, Y: 10}}, Width: 2}}}
	got = ContentSize(shallow, view, 1)
	assert.Equal(t, 1000.0, got.Height, "never shorter than the view")
}

func TestCenterOffset(t *testing.T) {
	off := CenterOffset(imagepkg.Size{Width: 1000, Height: 500}, imagepkg.Size{Width: 800, Height: 900})
	assert.Equal(t, ink.Point{X: 100, Y: 0}, off)
}

func TestLayout_TracksSurface(t *testing.T) {
	s := ink.NewSurface(ink.Drawing{})
	l := NewLayout(s, imagepkg.Size{Width: 385, Height: 600})

	assert.Equal(t, 0.5, l.Zoom())
	assert.Equal(t, imagepkg.Size{Width: 385, Height: 600}, l.ContentSize())

	s.AddStroke(ink.Stroke{Points: []ink.Point{{X: 0, Y: 1500}}, Width: 0})
	assert.Equal(t, imagepkg.Size{Width: 385, Height: 1000}, l.ContentSize())
	assert.Equal(t, ink.Point{}, l.Offset())

	s.Clear()
	assert.Equal(t, 600.0, l.ContentSize().Height)
}
