package backend

import (
	"fmt"
	"strings"
)

// Layer is a visibility bitmask. A handle is drawn by a camera or canvas
// whose visibility mask contains the handle's layer.
type Layer uint32

// Predefined layers.
const (
	LayerNone          Layer = 0
	LayerIgnoreRaycast Layer = 1 << 20
	LayerGizmos        Layer = 1 << 21
	LayerEditor        Layer = 1 << 22
	LayerUI3D          Layer = 1 << 23
	LayerSceneGizmo    Layer = 1 << 24
	LayerUI2D          Layer = 1 << 25
	LayerProfiler      Layer = 1 << 28
	LayerDefault       Layer = 1 << 30
	LayerAll           Layer = 0xffffffff
)

// layerNames lists named layers in bit order.
var layerNames = []struct {
	layer Layer
	name  string
}{
	{LayerIgnoreRaycast, "ignore_raycast"},
	{LayerGizmos, "gizmos"},
	{LayerEditor, "editor"},
	{LayerUI3D, "ui_3d"},
	{LayerSceneGizmo, "scene_gizmo"},
	{LayerUI2D, "ui_2d"},
	{LayerProfiler, "profiler"},
	{LayerDefault, "default"},
}

// Contains reports whether every bit of other is set in l.
func (l Layer) Contains(other Layer) bool {
	return l&other == other
}

// String returns the layer name, a "|"-joined list for combined masks, or
// a hexadecimal value for unnamed bits.
func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerAll:
		return "all"
	}
	var parts []string
	rest := l
	for _, n := range layerNames {
		if l.Contains(n.layer) {
			parts = append(parts, n.name)
			rest &^= n.layer
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%08x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseLayer parses a layer name as produced by String.
func ParseLayer(s string) (Layer, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "none":
		return LayerNone, nil
	case "all":
		return LayerAll, nil
	}
	var l Layer
	for part := range strings.SplitSeq(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, n := range layerNames {
			if n.name == part {
				l |= n.layer
				found = true
				break
			}
		}
		if !found {
			var v uint32
			if _, err := fmt.Sscanf(part, "0x%x", &v); err != nil {
				return LayerNone, fmt.Errorf("backend: unknown layer %q", part)
			}
			l |= Layer(v)
		}
	}
	return l, nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Layer) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layer) UnmarshalText(text []byte) error {
	v, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
