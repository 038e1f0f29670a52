// Package raster provides a software implementation of the backend
// contracts on top of gg.
//
// The backend owns one gg.Context. 2D surfaces map world units to pixels
// with the origin at the image center and y pointing up. The 3D viewport
// projects submitted batches through a perspective Camera and paints
// depth-tested primitives back to front, followed by the batches drawn
// without depth testing.
//
// Import the package to register it under the name "raster":
//
//	import _ "github.com/gogpu/gizmo/backend/raster"
//
//	b, err := backend.New("raster", 800, 600)
package raster
