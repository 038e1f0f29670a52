package driver

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend/backendtest"
	"github.com/gogpu/gizmo/scene"
)

type staticSelection []string

func (s staticSelection) Selected() []string { return s }

func newScene(components ...any) (*scene.Scene, []*scene.Node) {
	sc := scene.New("test")
	nodes := make([]*scene.Node, len(components))
	for i, c := range components {
		n := scene.NewNode("n")
		n.AddComponent(c)
		sc.Add(n)
		nodes[i] = n
	}
	return sc, nodes
}

func TestDriverSelectionGating(t *testing.T) {
	a, b := &counter{}, &counter{}
	sc, nodes := newScene(a, b)
	sc.Selection().Select(nodes[1].ID())

	reg := NewRegistry()
	reg.Register((*counter)(nil))
	d := New(reg)
	d.OnSceneReady(sc)

	require.NoError(t, d.Tick())
	require.NoError(t, d.Tick())

	assert.Equal(t, 2, a.draws)
	assert.Equal(t, 0, a.selected)
	assert.Equal(t, 2, b.draws)
	assert.Equal(t, 2, b.selected)
	assert.Equal(t, uint64(2), d.Frame())
}

func TestDriverFocusCountsAsSelected(t *testing.T) {
	s := &selectedOnly{}
	sc, nodes := newScene(s)
	reg := NewRegistry()
	reg.Register(s)
	d := New(reg)
	d.OnSceneReady(sc)

	d.BeforeUpdate()
	assert.Equal(t, 0, s.selected)

	sc.Selection().Focus(nodes[0].ID())
	d.BeforeUpdate()
	assert.Equal(t, 1, s.selected)

	sc.Selection().Blur(nodes[0].ID())
	d.BeforeUpdate()
	assert.Equal(t, 1, s.selected)
}

func TestDriverWithSelectionOverride(t *testing.T) {
	c := &counter{}
	sc, nodes := newScene(c)
	reg := NewRegistry()
	reg.Register(c)
	d := New(reg, WithSelection(staticSelection{nodes[0].ID()}))
	d.OnSceneReady(sc)

	d.BeforeUpdate()
	assert.Equal(t, 1, c.selected)
}

func TestDriverOnlyCallsRegisteredTypes(t *testing.T) {
	c, s := &counter{}, &selectedOnly{}
	sc, nodes := newScene(c, s)
	sc.Selection().Select(nodes[0].ID(), nodes[1].ID())

	reg := NewRegistry()
	reg.Register(c)
	d := New(reg)
	d.OnSceneReady(sc)
	d.BeforeUpdate()

	assert.Equal(t, 1, c.draws)
	assert.Equal(t, 0, s.selected)
}

func TestDriverVisitsNestedNodes(t *testing.T) {
	sc := scene.New("test")
	parent, child := scene.NewNode("parent"), scene.NewNode("child")
	sc.Add(parent)
	parent.AddChild(child)
	c := &counter{}
	child.AddComponent(c)

	reg := NewRegistry()
	reg.Register(c)
	d := New(reg)
	d.OnSceneReady(sc)
	d.BeforeUpdate()
	assert.Equal(t, 1, c.draws)
}

func TestDriverRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	c := &counter{}
	sc, _ := newScene(panicker{}, c)
	reg := NewRegistry()
	reg.Register(panicker{})
	reg.Register(c)
	d := New(reg, WithLogger(l))
	d.OnSceneReady(sc)

	assert.NotPanics(t, func() { require.NoError(t, d.Tick()) })
	assert.Equal(t, 1, c.draws, "later components still draw")
	assert.Contains(t, buf.String(), "broken gizmo")
	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
}

func TestDriverWithoutScene(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&counter{})
	d := New(reg)

	assert.NotPanics(t, func() {
		d.BeforeUpdate()
		require.NoError(t, d.LateUpdate())
		require.NoError(t, d.Tick())
	})
	assert.Nil(t, d.Scene())
	assert.Equal(t, uint64(0), d.Frame())
}

func TestDriverOnSceneReadyNil(t *testing.T) {
	c := &counter{}
	sc, _ := newScene(c)
	reg := NewRegistry()
	reg.Register(c)
	d := New(reg)
	d.OnSceneReady(sc)
	require.NoError(t, d.Tick())

	assert.NotPanics(t, func() {
		d.OnSceneReady(nil)
		require.NoError(t, d.Tick())
	})
	assert.Nil(t, d.Scene())
	assert.Equal(t, 1, c.draws, "no drawing without a scene")
	assert.Equal(t, uint64(1), d.Frame())
}

// selfDestroyer destroys its node from inside its draw callback.
type selfDestroyer struct {
	node  *scene.Node
	draws int
}

func (s *selfDestroyer) DrawGizmos() {
	s.draws++
	_ = s.node.Destroy()
}

func (s *selfDestroyer) DrawGizmosSelected() {
	panic("selected callback on a destroyed node")
}

func TestDriverComponentDestroysItsNode(t *testing.T) {
	a, b := &selfDestroyer{}, &selfDestroyer{}
	last := &counter{}
	sc, nodes := newScene(a, b, last)
	a.node, b.node = nodes[0], nodes[1]
	sc.Selection().Select(nodes[0].ID(), nodes[1].ID())

	var buf bytes.Buffer
	reg := NewRegistry()
	reg.Register(a)
	reg.Register(last)
	d := New(reg, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	d.OnSceneReady(sc)

	assert.NotPanics(t, func() { require.NoError(t, d.Tick()) })
	assert.Equal(t, 1, a.draws)
	assert.Equal(t, 1, b.draws, "sibling after a destroyed node is still visited")
	assert.Equal(t, 1, last.draws)
	assert.Equal(t, []*scene.Node{nodes[2]}, sc.Root().Children())
	assert.NotContains(t, buf.String(), "level=WARN")

	assert.NotPanics(t, func() { require.NoError(t, d.Tick()) })
	assert.Equal(t, 1, a.draws)
	assert.Equal(t, 2, last.draws)
}

// circles draws two circles of different colors every frame while its
// enabled flag is set.
type circles struct {
	node    *scene.Node
	g       *gizmo.Gizmos2D
	enabled bool
}

func (c *circles) DrawGizmos() {
	if !c.enabled {
		return
	}
	c.g.DrawCircle(c.node, mgl64.Vec2{0, 0}, 10)
	c.g.BeginColor(c.node, gg.Red)
	c.g.DrawCircle(c.node, mgl64.Vec2{20, 0}, 10)
	c.g.EndColor(c.node)
}

func TestDriverFlushesDrawContexts(t *testing.T) {
	b := backendtest.NewBackend()
	g := gizmo.NewGizmos2D(gizmo.WithSurfaces(b))

	sc := scene.New("test")
	n := scene.NewNode("n")
	sc.Add(n)
	comp := &circles{node: n, g: g, enabled: true}
	n.AddComponent(comp)

	reg := NewRegistry()
	reg.Register(comp)
	d := New(reg, WithBackend(b))
	d.OnSceneReady(sc)

	require.NoError(t, d.Tick())
	s := b.Last()
	require.NotNil(t, s)
	assert.Len(t, s.Graphics, 2)
	assert.Equal(t, 2, s.Strokes())
	assert.Equal(t, 0, gizmo.Locate2D(n).Pending())
	assert.Equal(t, 1, b.Renders)

	comp.enabled = false
	require.NoError(t, d.Tick())
	assert.Len(t, s.Graphics, 2, "handles are reused")
	assert.Equal(t, 0, s.Strokes(), "nothing drawn in the next frame")
	assert.Equal(t, 2, b.Renders)
}

type failingBackend struct {
	*backendtest.Backend
}

func (failingBackend) Render() error { return errors.New("device lost") }

func TestDriverReportsRenderErrors(t *testing.T) {
	sc := scene.New("test")
	d := New(NewRegistry(), WithBackend(failingBackend{backendtest.NewBackend()}))
	d.OnSceneReady(sc)

	err := d.Tick()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device lost")
	assert.Equal(t, uint64(1), d.Frame())
}
