package drawlist

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.PointCount() != 0 {
		t.Errorf("PointCount() = %d, want 0", b.PointCount())
	}
}

func TestBufferAppendStoresPoints(t *testing.T) {
	b := NewBuffer()
	p0 := mgl64.Vec3{1, 2, 0}
	p1 := mgl64.Vec3{3, 4, 0}
	p2 := mgl64.Vec3{5, 6, 0}

	b.Append(Command{Type: CmdLine}, p0, p1)
	b.Append(Command{Type: CmdCircle, Params: [6]float64{10}}, p2)

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.PointCount() != 3 {
		t.Fatalf("PointCount() = %d, want 3", b.PointCount())
	}

	cmds := b.Commands()
	if cmds[0].Points != (Span{Offset: 0, Len: 2}) {
		t.Errorf("cmds[0].Points = %+v, want {0 2}", cmds[0].Points)
	}
	if cmds[1].Points != (Span{Offset: 2, Len: 1}) {
		t.Errorf("cmds[1].Points = %+v, want {2 1}", cmds[1].Points)
	}

	pts := b.Points(cmds[1].Points)
	if len(pts) != 1 || pts[0] != p2 {
		t.Errorf("Points(cmds[1]) = %v, want [%v]", pts, p2)
	}
}

func TestBufferAppendCopiesPoints(t *testing.T) {
	b := NewBuffer()
	src := []mgl64.Vec3{{1, 1, 0}, {2, 2, 0}}
	b.Append(Command{Type: CmdLineList}, src...)

	src[0] = mgl64.Vec3{99, 99, 99}

	got := b.Points(b.Commands()[0].Points)
	if got[0] != (mgl64.Vec3{1, 1, 0}) {
		t.Errorf("stored point changed with caller slice: got %v", got[0])
	}
}

func TestBufferAppendOverwritesSpan(t *testing.T) {
	b := NewBuffer()
	b.Append(Command{Type: CmdLine, Points: Span{Offset: 100, Len: 7}}, mgl64.Vec3{}, mgl64.Vec3{})
	if got := b.Commands()[0].Points; got != (Span{Offset: 0, Len: 2}) {
		t.Errorf("Points = %+v, want {0 2}", got)
	}
}

func TestBufferPointsOutOfRange(t *testing.T) {
	b := NewBuffer()
	if got := b.Points(Span{Offset: 4, Len: 2}); got != nil {
		t.Errorf("Points(out of range) = %v, want nil", got)
	}
}

func TestBufferReplayOrder(t *testing.T) {
	b := NewBuffer()
	order := []CommandType{CmdCircle, CmdLine, CmdLabel, CmdSolidRect}
	for _, c := range order {
		b.Append(Command{Type: c})
	}

	var got []CommandType
	b.Replay(func(cmd *Command, _ []mgl64.Vec3) {
		got = append(got, cmd.Type)
	})

	if len(got) != len(order) {
		t.Fatalf("replayed %d commands, want %d", len(got), len(order))
	}
	for i := range order {
		if got[i] != order[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], order[i])
		}
	}
	if b.Len() != len(order) {
		t.Errorf("Replay modified buffer: Len() = %d", b.Len())
	}
}

func TestBufferDrainEmpties(t *testing.T) {
	b := NewBuffer()
	b.Append(Command{Type: CmdLine, Color: gg.Red}, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	b.Append(Command{Type: CmdSprite, Image: image.NewRGBA(image.Rect(0, 0, 1, 1))})

	calls := 0
	b.Drain(func(*Command, []mgl64.Vec3) { calls++ })

	if calls != 2 {
		t.Errorf("Drain visited %d commands, want 2", calls)
	}
	if b.Len() != 0 || b.PointCount() != 0 {
		t.Errorf("after Drain: Len() = %d, PointCount() = %d, want 0, 0", b.Len(), b.PointCount())
	}

	calls = 0
	b.Drain(func(*Command, []mgl64.Vec3) { calls++ })
	if calls != 0 {
		t.Errorf("second Drain visited %d commands, want 0", calls)
	}
}

func TestBufferResetDropsOverlayReferences(t *testing.T) {
	b := NewBuffer()
	b.Append(Command{Type: CmdLabel, Text: "hello"})
	b.Append(Command{Type: CmdSprite, Image: image.NewRGBA(image.Rect(0, 0, 1, 1))})

	backing := b.commands[:2]
	b.Reset()

	if backing[0].Text != "" {
		t.Errorf("Text retained after Reset: %q", backing[0].Text)
	}
	if backing[1].Image != nil {
		t.Error("Image retained after Reset")
	}
}

func TestBufferReuseDoesNotGrow(t *testing.T) {
	b := NewBuffer()
	frame := func() {
		for i := 0; i < 10; i++ {
			b.Append(Command{Type: CmdLine}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 0})
		}
		b.Drain(func(*Command, []mgl64.Vec3) {})
	}

	frame()
	cmdCap, ptCap := cap(b.commands), cap(b.points)
	for i := 0; i < 5; i++ {
		frame()
	}
	if cap(b.commands) != cmdCap || cap(b.points) != ptCap {
		t.Errorf("capacity changed across frames: commands %d -> %d, points %d -> %d",
			cmdCap, cap(b.commands), ptCap, cap(b.points))
	}
}
