package backendtest

import (
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/gizmo/backend"
)

// Renderer records submitted batches. Vertices are copied.
type Renderer struct {
	Batches []backend.Batch
}

var _ backend.GeometryRenderer = (*Renderer)(nil)

func (r *Renderer) Submit(b backend.Batch) {
	b.Vertices = slices.Clone(b.Vertices)
	r.Batches = append(r.Batches, b)
}

// Reset forgets all recorded batches.
func (r *Renderer) Reset() {
	r.Batches = r.Batches[:0]
}

// Vertices returns the total number of submitted vertices.
func (r *Renderer) Vertices() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Vertices)
	}
	return n
}

// Viewport is a backend.Viewport with an optional renderer. A nil
// Renderer makes GeometryRenderer report backend.ErrNoRenderer.
type Viewport struct {
	Surfaces
	Renderer *Renderer
	Rotation mgl64.Quat

	// RendererCalls counts GeometryRenderer lookups.
	RendererCalls int
}

var _ backend.Viewport = (*Viewport)(nil)

// NewViewport returns a viewport with a recording renderer and an identity
// camera rotation.
func NewViewport() *Viewport {
	return &Viewport{Renderer: &Renderer{}, Rotation: mgl64.QuatIdent()}
}

func (v *Viewport) GeometryRenderer() (backend.GeometryRenderer, error) {
	v.RendererCalls++
	if v.Renderer == nil {
		return nil, backend.ErrNoRenderer
	}
	return v.Renderer, nil
}

func (v *Viewport) CameraRotation() mgl64.Quat { return v.Rotation }

// Backend is a backend.Backend made of recording parts.
type Backend struct {
	Surfaces
	View     *Viewport
	Renders  int
	Released bool
}

var _ backend.Backend = (*Backend)(nil)

// NewBackend returns a recording backend.
func NewBackend() *Backend {
	return &Backend{View: NewViewport()}
}

func (b *Backend) Name() string               { return "backendtest" }
func (b *Backend) Viewport() backend.Viewport { return b.View }
func (b *Backend) Image() image.Image         { return nil }
func (b *Backend) Release()                   { b.Released = true }

func (b *Backend) Render() error {
	b.Renders++
	return nil
}
