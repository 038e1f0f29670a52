package backend

import "testing"

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerNone, "none"},
		{LayerAll, "all"},
		{LayerGizmos, "gizmos"},
		{LayerGizmos | LayerEditor, "gizmos|editor"},
		{LayerDefault | Layer(1), "default|0x00000001"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.layer.String(); got != tt.want {
				t.Errorf("Layer(%#x).String() = %q, want %q", uint32(tt.layer), got, tt.want)
			}
		})
	}
}

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in      string
		want    Layer
		wantErr bool
	}{
		{"gizmos", LayerGizmos, false},
		{"  UI_2D ", LayerUI2D, false},
		{"gizmos|editor", LayerGizmos | LayerEditor, false},
		{"none", LayerNone, false},
		{"all", LayerAll, false},
		{"0x00000004", Layer(4), false},
		{"bogus", LayerNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayer(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayer(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayer(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLayerTextRoundTrip(t *testing.T) {
	for _, l := range []Layer{LayerGizmos, LayerUI3D | LayerSceneGizmo, LayerAll} {
		text, err := l.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", l, err)
		}
		var got Layer
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != l {
			t.Errorf("round trip of %v = %v", l, got)
		}
	}
}

func TestLayerContains(t *testing.T) {
	mask := LayerGizmos | LayerUI2D
	if !mask.Contains(LayerGizmos) {
		t.Error("mask should contain LayerGizmos")
	}
	if mask.Contains(LayerEditor) {
		t.Error("mask should not contain LayerEditor")
	}
	if !LayerAll.Contains(LayerProfiler) {
		t.Error("LayerAll should contain every layer")
	}
}
