package gizmo

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// colorKey packs c into 0xRRGGBBAA after clamping every channel to [0, 1].
// Colors that render identically map to the same key.
func colorKey(c gg.RGBA) uint32 {
	return uint32(channel8(c.R))<<24 | uint32(channel8(c.G))<<16 |
		uint32(channel8(c.B))<<8 | uint32(channel8(c.A))
}

func channel8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// colorFromKey unpacks a key produced by colorKey.
func colorFromKey(k uint32) gg.RGBA {
	return gg.RGBA2(
		float64(k>>24&0xff)/255,
		float64(k>>16&0xff)/255,
		float64(k>>8&0xff)/255,
		float64(k&0xff)/255,
	)
}

// gpuColor converts c to the descriptor color used for geometry batches.
func gpuColor(c gg.RGBA) gputypes.Color {
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
