package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/youruser/canvasapp/internal/image"
)

func line(y float64) Stroke {
	return Stroke{
		Points: []Point{{X: 10, Y: y}, {X: 90, Y: y}},
		Width:  10,
		Color:  "#ff0000",
	}
}

func TestDrawing_Bounds(t *testing.T) {
	_, ok := Drawing{}.Bounds()
	assert.False(t, ok)

	_, ok = Drawing{Strokes: []Stroke{{Width: 3}}}.Bounds()
	assert.False(t, ok, "stroke without points has no bounds")

	r, ok := Drawing{Strokes: []Stroke{line(50), {Points: []Point{{X: 40, Y: 120}}, Width: 4}}}.Bounds()
	require.True(t, ok)
	assert.Equal(t, imagepkg.Rect{X: 5, Y: 45, Width: 90, Height: 77}, r)
	assert.Equal(t, 122.0, r.MaxY())
}

func TestDrawing_RenderToImage(t *testing.T) {
	d := Drawing{Strokes: []Stroke{line(50)}}
	img, err := d.RenderToImage(imagepkg.Rect{Width: 100, Height: 100}, 2)
	require.NoError(t, err)

	assert.Equal(t, 200, img.Width())
	assert.Equal(t, 200, img.Height())
	assert.Equal(t, 2.0, img.Scale())

	px := img.Image()
	mid := px.RGBAAt(100, 100)
	assert.Greater(t, mid.R, uint8(0xf0))
	assert.Greater(t, mid.A, uint8(0xf0))
	assert.Less(t, mid.G, uint8(0x10))
	assert.Equal(t, uint8(0), px.RGBAAt(5, 5).A, "untouched area stays transparent")
	assert.Equal(t, uint8(0), px.RGBAAt(100, 180).A)
}

func TestDrawing_RenderToImageOffsetRect(t *testing.T) {
	d := Drawing{Strokes: []Stroke{line(50)}}
	img, err := d.RenderToImage(imagepkg.Rect{X: 0, Y: 40, Width: 100, Height: 20}, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Height())
	assert.Greater(t, img.Image().RGBAAt(50, 10).A, uint8(0xf0))
}

func TestDrawing_RenderDot(t *testing.T) {
	d := Drawing{Strokes: []Stroke{{Points: []Point{{X: 20, Y: 20}}, Width: 12}}}
	img, err := d.RenderToImage(imagepkg.Rect{Width: 40, Height: 40}, 1)
	require.NoError(t, err)
	c := img.Image().RGBAAt(20, 20)
	assert.Greater(t, c.A, uint8(0xf0))
	assert.Less(t, c.R, uint8(0x10), "default colour is black")
}

func TestDrawing_RenderEmptyIsTransparent(t *testing.T) {
	img, err := Drawing{}.RenderToImage(imagepkg.Rect{Width: 8, Height: 8}, 1)
	require.NoError(t, err)
	for _, b := range img.Image().Pix {
		require.Zero(t, b)
	}
}

func TestDrawing_RenderDeterministic(t *testing.T) {
	d := Drawing{Strokes: []Stroke{line(20), line(60)}}
	rect := imagepkg.Rect{Width: 100, Height: 80}
	a, err := d.RenderToImage(rect, 1.5)
	require.NoError(t, err)
	b, err := d.RenderToImage(rect, 1.5)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestDrawing_RenderInvalid(t *testing.T) {
	d := Drawing{Strokes: []Stroke{line(10)}}
	for name, tc := range map[string]struct {
		rect  imagepkg.Rect
		scale float64
	}{
		"zero area":  {imagepkg.Rect{Width: 0, Height: 10}, 1},
		"zero scale": {imagepkg.Rect{Width: 10, Height: 10}, 0},
		"sub pixel":  {imagepkg.Rect{Width: 0.2, Height: 0.2}, 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := d.RenderToImage(tc.rect, tc.scale)
			assert.Error(t, err)
		})
	}
}

func TestDrawing_AsCompositionInk(t *testing.T) {
	// a sub-pixel canvas is rejected before the ink is asked to render
	_, err := imagepkg.Compose(imagepkg.CompositionRequest{
		Ink:         Drawing{},
		CanvasSize:  imagepkg.Size{Width: 0.2, Height: 0.2},
		ExportScale: 1,
	})
	assert.ErrorIs(t, err, imagepkg.ErrInvalidImage)

	out, err := imagepkg.Compose(imagepkg.CompositionRequest{
		Ink:         Drawing{Strokes: []Stroke{line(50)}},
		CanvasSize:  imagepkg.Size{Width: 100, Height: 100},
		ExportScale: 1,
	})
	require.NoError(t, err)
	assert.Greater(t, out.Image().RGBAAt(50, 50).A, uint8(0xf0))
}
