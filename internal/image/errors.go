package imagepkg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage matches any *InvalidImageError.
	ErrInvalidImage = errors.New("invalid image")
	// ErrRenderFailure matches any *RenderFailure.
	ErrRenderFailure = errors.New("render failure")
	// ErrPickCancelled is returned when no photo was supplied.
	ErrPickCancelled = errors.New("photo pick cancelled")
)

// InvalidImageError reports zero, negative or non-finite dimensions.
type InvalidImageError struct {
	Width, Height float64
	Reason        string
}

func invalidImage(w, h float64, reason string) *InvalidImageError {
	return &InvalidImageError{Width: w, Height: h, Reason: reason}
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %gx%g: %s", e.Width, e.Height, e.Reason)
}

func (e *InvalidImageError) Is(target error) bool { return target == ErrInvalidImage }

// RenderFailure reports that a layer produced no usable output.
type RenderFailure struct {
	Layer string
	Err   error
}

func (e *RenderFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render %s: no output", e.Layer)
	}
	return fmt.Sprintf("render %s: %v", e.Layer, e.Err)
}

func (e *RenderFailure) Unwrap() error { return e.Err }

func (e *RenderFailure) Is(target error) bool { return target == ErrRenderFailure }
