package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_NotifiesOnChange(t *testing.T) {
	s := NewSurface(Drawing{})
	var seen []int
	s.OnChange(func(d Drawing) { seen = append(seen, len(d.Strokes)) })

	s.AddStroke(line(10))
	s.AddStroke(line(20))
	require.NoError(t, s.RemoveStroke(0))
	s.Clear()

	assert.Equal(t, []int{1, 2, 1, 0}, seen)
}

func TestSurface_RemoveStrokeOutOfRange(t *testing.T) {
	s := NewSurface(Drawing{Strokes: []Stroke{line(10)}})
	calls := 0
	s.OnChange(func(Drawing) { calls++ })

	assert.Error(t, s.RemoveStroke(1))
	assert.Error(t, s.RemoveStroke(-1))
	assert.Zero(t, calls)
	assert.Len(t, s.Drawing().Strokes, 1)
}

func TestSurface_RemoveKeepsOrder(t *testing.T) {
	s := NewSurface(Drawing{Strokes: []Stroke{line(1), line(2), line(3)}})
	snap := s.Drawing()
	require.NoError(t, s.RemoveStroke(1))

	got := s.Drawing().Strokes
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Points[0].Y)
	assert.Equal(t, 3.0, got[1].Points[0].Y)
	assert.Len(t, snap.Strokes, 3, "earlier snapshots are unaffected")
	assert.Equal(t, 2.0, snap.Strokes[1].Points[0].Y)
}

func TestSurface_CallbackMayReadSurface(t *testing.T) {
	s := NewSurface(Drawing{})
	var n int
	s.OnChange(func(Drawing) { n = len(s.Drawing().Strokes) })
	s.AddStroke(line(5))
	assert.Equal(t, 1, n)
}
