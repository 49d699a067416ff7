package ink

import (
	"fmt"
	"sync"
)

// Surface holds the drawing being edited and notifies listeners whenever a
// stroke is added or removed.
type Surface struct {
	mu       sync.Mutex
	strokes  []Stroke
	onChange []func(Drawing)
}

// NewSurface returns a surface seeded with d.
func NewSurface(d Drawing) *Surface {
	return &Surface{strokes: append([]Stroke(nil), d.Strokes...)}
}

// OnChange registers fn to run after every change.
func (s *Surface) OnChange(fn func(Drawing)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Drawing returns a snapshot of the current strokes.
func (s *Surface) Drawing() Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddStroke appends st.
func (s *Surface) AddStroke(st Stroke) {
	s.mu.Lock()
	s.strokes = append(s.strokes, st)
	s.changed()
}

// RemoveStroke deletes the stroke at index i.
func (s *Surface) RemoveStroke(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.strokes) {
		n := len(s.strokes)
		s.mu.Unlock()
		return fmt.Errorf("ink: stroke index %d out of range [0,%d)", i, n)
	}
	s.strokes = append(s.strokes[:i:i], s.strokes[i+1:]...)
	s.changed()
	return nil
}

// Clear removes all strokes.
func (s *Surface) Clear() {
	s.mu.Lock()
	s.strokes = nil
	s.changed()
}

func (s *Surface) snapshot() Drawing {
	return Drawing{Strokes: append([]Stroke(nil), s.strokes...)}
}

// changed must be called with mu held; it releases mu before running callbacks.
func (s *Surface) changed() {
	d := s.snapshot()
	fns := append(([]func(Drawing))(nil), s.onChange...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(d)
	}
}
