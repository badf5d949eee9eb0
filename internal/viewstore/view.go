// Package viewstore persists per-chart view state (visible window, stride
// and committed annotation) and debounces writes from the interaction loop.
package viewstore

import (
	"context"
	"errors"
	"time"

	"plotview/internal/geom"
)

// ErrNotFound is returned by Load when no view exists for the chart.
var ErrNotFound = errors.New("view not found")

// Window is the visible data window. For grid charts X holds the column
// span and Y the row span.
type Window struct {
	X geom.Range `json:"x"`
	Y geom.Range `json:"y"`
}

// Annotation is a committed selection in data (or cell-index) coordinates.
type Annotation struct {
	X geom.Range `json:"x"`
	Y geom.Range `json:"y"`
}

// View is the persisted record for one chart. Nil fields are absent.
type View struct {
	Window     *Window     `json:"window,omitempty"`
	Stride     *int        `json:"stride,omitempty"`
	Annotation *Annotation `json:"annotation,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Merge overlays the non-nil fields of p onto v.
func (v View) Merge(p View) View {
	if p.Window != nil {
		w := *p.Window
		v.Window = &w
	}
	if p.Stride != nil {
		s := *p.Stride
		v.Stride = &s
	}
	if p.Annotation != nil {
		a := *p.Annotation
		v.Annotation = &a
	}
	if !p.UpdatedAt.IsZero() {
		v.UpdatedAt = p.UpdatedAt
	}
	return v
}

// Empty reports whether the view carries nothing to restore.
func (v View) Empty() bool {
	return v.Window == nil && v.Stride == nil && v.Annotation == nil
}

// Store is the external owner of views, keyed by chart identity.
type Store interface {
	Load(ctx context.Context, id string) (View, error)
	Save(ctx context.Context, id string, v View) error
	Delete(ctx context.Context, id string) error
}
