package raster

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gizmo/backend"
)

// Option configures a Backend.
type Option func(*options)

type options struct {
	background    gg.RGBA
	visible       backend.Layer
	pixelsPerUnit float64
	lineWidth3D   float64
	camera        Camera
	noRenderer    bool
}

func defaultOptions() options {
	return options{
		background:    gg.White,
		visible:       backend.LayerAll,
		pixelsPerUnit: 1,
		lineWidth3D:   2,
		camera:        DefaultCamera(),
	}
}

// WithBackground sets the color every frame starts from.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithVisibleLayers sets the layer mask of the canvas. Handles on layers
// outside the mask are not painted.
func WithVisibleLayers(mask backend.Layer) Option {
	return func(o *options) {
		o.visible = mask
	}
}

// WithPixelsPerUnit sets the scale of 2D world units.
func WithPixelsPerUnit(ppu float64) Option {
	return func(o *options) {
		if ppu > 0 {
			o.pixelsPerUnit = ppu
		}
	}
}

// WithLineWidth3D sets the pixel width of 3D line batches.
func WithLineWidth3D(w float64) Option {
	return func(o *options) {
		if w > 0 {
			o.lineWidth3D = w
		}
	}
}

// WithCamera sets the initial 3D camera.
func WithCamera(c Camera) Option {
	return func(o *options) {
		o.camera = c
	}
}

// WithoutGeometryRenderer makes the viewport report backend.ErrNoRenderer,
// as a host without 3D support would.
func WithoutGeometryRenderer() Option {
	return func(o *options) {
		o.noRenderer = true
	}
}
