package gizmo

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gizmo/backend/backendtest"
	"github.com/gogpu/gizmo/shape"
)

func new3D(t *testing.T, opts ...Option) (*Gizmos3D, *backendtest.Viewport) {
	t.Helper()
	vp := backendtest.NewViewport()
	return NewGizmos3D(append([]Option{WithViewport(vp)}, opts...)...), vp
}

func TestContext3DLookupIsIdempotent(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})

	c := g.Context(node)
	require.NotNil(t, c)
	assert.Same(t, c, g.Context(node))
	assert.Same(t, c, Locate3D(node))
	assert.Nil(t, Locate2D(node))
	assert.Equal(t, 1, vp.RendererCalls)
	assert.Len(t, vp.Created, 1, "one overlay surface")
}

func TestContext3DLineBatch(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})

	g.DrawLine(node, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3})
	Locate3D(node).Flush()

	require.Len(t, vp.Renderer.Batches, 1)
	b := vp.Renderer.Batches[0]
	assert.Equal(t, gputypes.PrimitiveTopologyLineList, b.Topology)
	assert.Equal(t, gputypes.CompareFunctionLess, b.DepthCompare)
	assert.True(t, b.DepthTested())
	assert.Equal(t, gputypes.Color{R: 0, G: 0, B: 1, A: 1}, b.Color)
	assert.Equal(t, []mgl64.Vec3{{0, 0, 0}, {1, 2, 3}}, b.Vertices)
}

func TestContext3DSolidShapesAreTriangles(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})

	g.DrawBox(node, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, false)
	g.DrawBox(node, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, true)
	Locate3D(node).Flush()

	require.Len(t, vp.Renderer.Batches, 2)
	assert.Equal(t, gputypes.PrimitiveTopologyTriangleList, vp.Renderer.Batches[0].Topology)
	assert.Len(t, vp.Renderer.Batches[0].Vertices, 36)
	assert.Equal(t, gputypes.PrimitiveTopologyLineList, vp.Renderer.Batches[1].Topology)
	assert.Len(t, vp.Renderer.Batches[1].Vertices, 24)
}

func TestContext3DSegmentsPerCall(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	o := mgl64.Vec3{}

	g.DrawCircle(node, o, 1, 4, o)
	g.DrawCircle(node, o, 1, 0, o)
	g.DrawSphere(node, o, 1, 6, 3, false)
	g.DrawSphere(node, o, 1, 6, 0, false)
	g.DrawDisc(node, o, 1, 5, o, false)
	g.DrawCone(node, o, 1, 2, 3, o, false)
	Locate3D(node).Flush()

	require.Len(t, vp.Renderer.Batches, 6)
	want := []int{
		4 * 2,              // circle of 4 segments
		32 * 2,             // configured 32 segments
		(2*6 + 2*6) * 3,    // 3 bands of 6, two of them polar
		(2*6 + 14*2*6) * 3, // configured 16 bands
		5 * 3,              // disc fan
		(3 + 3) * 3,        // cone side and base fans
	}
	for i, n := range want {
		assert.Len(t, vp.Renderer.Batches[i].Vertices, n, "batch %d", i)
	}
}

func TestContext3DDepthTestPersists(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)
	require.True(t, c.DepthTest())

	g.SetDepthTest(node, false)
	g.DrawCross(node, mgl64.Vec3{}, 1)
	c.Flush()
	c.Flush()
	assert.False(t, c.DepthTest(), "depth test survives the frame reset")

	g.DrawCross(node, mgl64.Vec3{}, 1)
	c.Flush()
	require.Len(t, vp.Renderer.Batches, 2)
	for _, b := range vp.Renderer.Batches {
		assert.Equal(t, gputypes.CompareFunctionAlways, b.DepthCompare)
	}
}

func TestContext3DFrameIsolation(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)

	g.DrawSphere(node, mgl64.Vec3{}, 1, 0, 0, true)
	g.BeginColor(node, gg.Red)
	c.Flush()
	assert.Len(t, vp.Renderer.Batches, 1)
	assert.Equal(t, gg.Blue, c.State().Color)

	c.Flush()
	assert.Len(t, vp.Renderer.Batches, 1, "nothing submitted without draw calls")
}

func TestContext3DScopeSnapshot(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})

	g.BeginColor(node, gg.Red)
	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	g.EndColor(node)
	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	Locate3D(node).Flush()

	require.Len(t, vp.Renderer.Batches, 2)
	assert.Equal(t, gputypes.Color{R: 1, G: 0, B: 0, A: 1}, vp.Renderer.Batches[0].Color)
	assert.Equal(t, gputypes.Color{R: 0, G: 0, B: 1, A: 1}, vp.Renderer.Batches[1].Color)
}

func TestContext3DLocalSpace(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{1, 2, 3})
	c := g.Context(node)

	g.BeginLocalPosition(node)
	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	g.EndLocalPosition(node)
	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})

	node.moveTo(mgl64.Vec3{})
	c.Flush()

	require.Len(t, vp.Renderer.Batches, 2)
	local := vp.Renderer.Batches[0].Vertices
	assert.True(t, local[0].ApproxEqualThreshold(mgl64.Vec3{1, 2, 3}, 1e-9), "got %v", local[0])
	assert.True(t, local[1].ApproxEqualThreshold(mgl64.Vec3{2, 2, 3}, 1e-9), "got %v", local[1])
	world := vp.Renderer.Batches[1].Vertices
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, world[1])
}

func TestContext3DRotationBeforeTranslation(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{0, 0, 10})

	g.BeginLocalPosition(node)
	g.DrawCircle(node, mgl64.Vec3{}, 1, 0, mgl64.Vec3{90, 0, 0})
	Locate3D(node).Flush()

	require.Len(t, vp.Renderer.Batches, 1)
	center := mgl64.Vec3{0, 0, 10}
	for i, v := range vp.Renderer.Batches[0].Vertices {
		assert.InDelta(t, 1, v.Sub(center).Len(), 1e-9, "vertex %d", i)
		assert.InDelta(t, 10, v.Z(), 1e-9, "vertex %d leaves the rotated plane", i)
	}
}

func TestContext3DEveryPrimitiveSubmits(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)
	o := mgl64.Vec3{}
	rot := mgl64.Vec3{0, 45, 0}

	g.DrawLineList(node, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, true)
	g.DrawDashLine(node, o, mgl64.Vec3{2, 0, 0})
	g.DrawDashLineList(node, []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}}, false)
	g.DrawDisc(node, o, 1, 0, rot, false)
	g.DrawQuad(node, o, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0, 0, 1}, false)
	g.DrawArc(node, o, 1, 0, 90, 0, rot)
	g.DrawSolidArc(node, o, 1, 0, 90, 0, rot, false)
	g.DrawPolygon(node, o, 1, 6, rot, true)
	g.DrawOctahedron(node, o, 1, rot, false)
	g.DrawCapsule(node, o, 0.5, 2, 0, rot, true)
	g.DrawCylinder(node, o, 0.5, 2, 0, rot, false)
	g.DrawCone(node, o, 0.5, 2, 0, rot, true)
	g.DrawBezier(node, o, mgl64.Vec3{1, 1, 0}, mgl64.Vec3{2, 1, 0}, mgl64.Vec3{3, 0, 0}, rot)
	g.DrawSpline(node, []mgl64.Vec3{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}, {3, 1, 0}}, shape.SplineCatmullRom, 0.1)
	require.Equal(t, 14, c.Pending())

	c.Flush()
	assert.Len(t, vp.Renderer.Batches, 14)
	for i, b := range vp.Renderer.Batches {
		assert.NotEmpty(t, b.Vertices, "batch %d", i)
	}
}

func TestContext3DEmptyListsRecordNothing(t *testing.T) {
	g, _ := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)

	g.DrawLineList(node, nil, true)
	g.DrawDashLineList(node, []mgl64.Vec3{{1, 1, 1}}, false)
	g.DrawSpline(node, nil, shape.SplineLinear, 0)
	assert.Equal(t, 0, c.Pending())
}

func TestContext3DLabelsFaceCamera(t *testing.T) {
	g, vp := new3D(t)
	vp.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	node := newTestTarget("n", mgl64.Vec3{0, 1, 0})
	c := g.Context(node)

	g.BeginLocalPosition(node)
	g.DrawLabel(node, "hp", "100", mgl64.Vec3{0, 1, 0}, 0, 0)
	g.EndLocalPosition(node)
	c.Flush()

	require.Len(t, vp.Created, 1)
	overlay := vp.Created[0]
	require.Len(t, overlay.Labels, 1)
	l := overlay.Labels[0]
	assert.Equal(t, "100", l.Text)
	assert.Equal(t, 15.0, l.FontSize)
	assert.Equal(t, 1.0, l.ScaleX)
	assert.Equal(t, vp.Rotation, l.Rotation)
	assert.True(t, l.Position.ApproxEqualThreshold(mgl64.Vec3{0, 2, 0}, 1e-9), "got %v", l.Position)

	c.Flush()
	assert.Equal(t, "", l.Text)
}

func TestContext3DSprites(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	g.DrawSprite(node, "s", img, mgl64.Vec3{1, 1, 1}, mgl64.Vec2{2, 3}, gg.Red)
	c.Flush()

	sp := vp.Created[0].Sprites[0]
	assert.Same(t, img, sp.Image)
	assert.Equal(t, gg.Red, sp.Color)
	assert.Equal(t, 2.0, sp.ScaleX)
	assert.Equal(t, 3.0, sp.ScaleY)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, sp.Position)

	c.Flush()
	assert.Nil(t, sp.Image)
}

func TestContext3DNoRenderer(t *testing.T) {
	l, buf := captureLogger()
	vp := backendtest.NewViewport()
	vp.Renderer = nil
	g := NewGizmos3D(WithViewport(vp), WithLogger(l))
	node := newTestTarget("n", mgl64.Vec3{})

	for range 5 {
		g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
		g.DrawSphere(node, mgl64.Vec3{}, 1, 0, 0, false)
		g.DrawLabel(node, "a", "a", mgl64.Vec3{}, 0, 0)
	}
	c := Locate3D(node)
	require.NotNil(t, c)
	assert.False(t, c.Available())
	assert.Equal(t, 0, c.Pending())
	c.Flush()

	assert.Equal(t, 1, warnings(buf))
	assert.Equal(t, 1, vp.RendererCalls)
	assert.Empty(t, vp.Created, "no overlay surface without a renderer")
}

func TestContext3DNoViewport(t *testing.T) {
	l, buf := captureLogger()
	g := NewGizmos3D(WithLogger(l))
	node := newTestTarget("n", mgl64.Vec3{})

	g.DrawCross(node, mgl64.Vec3{}, 1)
	g.DrawCross(node, mgl64.Vec3{}, 1)
	Locate3D(node).Flush()
	assert.Equal(t, 1, warnings(buf))
}

func TestContext3DClose(t *testing.T) {
	g, vp := new3D(t)
	node := newTestTarget("n", mgl64.Vec3{})
	c := g.Context(node)

	g.DrawLabel(node, "a", "a", mgl64.Vec3{}, 0, 0)
	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	require.NoError(t, c.Close())

	overlay := vp.Created[0]
	assert.True(t, overlay.Released)
	assert.True(t, overlay.Labels[0].Released)
	assert.Equal(t, 0, c.Pending())

	g.DrawLine(node, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	c.Flush()
	assert.Empty(t, vp.Renderer.Batches)
}
