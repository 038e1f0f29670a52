package scene

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend"
)

var nextID atomic.Uint64

// Node is an object in the scene tree.
//
// Node is not safe for concurrent use.
type Node struct {
	id     string
	name   string
	parent *Node
	kids   []*Node

	pos   mgl64.Vec3
	rot   mgl64.Quat
	scale mgl64.Vec3
	layer backend.Layer

	components  []any
	attachments []any
	destroyed   bool
}

var _ gizmo.Target = (*Node)(nil)

// NewNode creates a detached node at the origin with a unique id.
func NewNode(name string) *Node {
	return &Node{
		id:    fmt.Sprintf("node-%d", nextID.Add(1)),
		name:  name,
		rot:   mgl64.QuatIdent(),
		scale: mgl64.Vec3{1, 1, 1},
		layer: backend.LayerDefault,
	}
}

// ID returns the unique id of the node.
func (n *Node) ID() string { return n.id }

// Name returns the display name of the node.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node { return n.kids }

// Destroyed reports whether Destroy was called.
func (n *Node) Destroyed() bool { return n.destroyed }

// AddChild moves c under n. It panics if c is n or an ancestor of n.
func (n *Node) AddChild(c *Node) {
	for p := n; p != nil; p = p.parent {
		if p == c {
			panic("scene: AddChild would create a cycle")
		}
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.kids = append(n.kids, c)
}

// RemoveChild detaches c from n. It is a no-op if c is not a child of n.
func (n *Node) RemoveChild(c *Node) {
	i := slices.Index(n.kids, c)
	if i < 0 {
		return
	}
	n.kids = slices.Delete(n.kids, i, i+1)
	c.parent = nil
}

// Position returns the position relative to the parent.
func (n *Node) Position() mgl64.Vec3 { return n.pos }

// SetPosition sets the position relative to the parent.
func (n *Node) SetPosition(p mgl64.Vec3) { n.pos = p }

// Rotation returns the rotation relative to the parent.
func (n *Node) Rotation() mgl64.Quat { return n.rot }

// SetRotation sets the rotation relative to the parent.
func (n *Node) SetRotation(q mgl64.Quat) { n.rot = q.Normalize() }

// SetEuler sets the rotation from euler angles in degrees, applied in X,
// Y, Z order.
func (n *Node) SetEuler(deg mgl64.Vec3) {
	n.rot = mgl64.AnglesToQuat(
		mgl64.DegToRad(deg.X()), mgl64.DegToRad(deg.Y()), mgl64.DegToRad(deg.Z()),
		mgl64.XYZ,
	)
}

// Scale returns the scale relative to the parent.
func (n *Node) Scale() mgl64.Vec3 { return n.scale }

// SetScale sets the scale relative to the parent.
func (n *Node) SetScale(s mgl64.Vec3) { n.scale = s }

// Layer returns the visibility layer of the node.
func (n *Node) Layer() backend.Layer { return n.layer }

// SetLayer sets the visibility layer of the node.
func (n *Node) SetLayer(l backend.Layer) { n.layer = l }

// LocalMatrix returns translate · rotate · scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.pos.X(), n.pos.Y(), n.pos.Z())
	s := mgl64.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())
	return t.Mul4(n.rot.Mat4()).Mul4(s)
}

// WorldMatrix returns the transform from the node's local frame to world
// space.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the origin of the node in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, n.WorldMatrix())
}

// AddComponent adds a user component.
func (n *Node) AddComponent(c any) {
	n.components = append(n.components, c)
}

// RemoveComponent removes the first occurrence of c.
func (n *Node) RemoveComponent(c any) {
	if i := slices.IndexFunc(n.components, func(x any) bool { return x == c }); i >= 0 {
		n.components = slices.Delete(n.components, i, i+1)
	}
}

// Components returns the user components in insertion order.
func (n *Node) Components() []any { return n.components }

// Attach adds a hidden resource. Attachments are not components.
func (n *Node) Attach(a any) {
	n.attachments = append(n.attachments, a)
}

// Attachments returns the hidden resources in attach order.
func (n *Node) Attachments() []any { return n.attachments }

// Destroy destroys the children, closes every attachment implementing
// io.Closer and detaches n from its parent. Close errors are joined.
// Destroying a node twice is a no-op.
func (n *Node) Destroy() error {
	if n.destroyed {
		return nil
	}
	n.destroyed = true

	var errs []error
	for _, c := range slices.Clone(n.kids) {
		errs = append(errs, c.Destroy())
	}
	for _, a := range n.attachments {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("scene: close attachment of %s: %w", n.id, err))
			}
		}
	}
	n.attachments = nil
	n.components = nil
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	gizmo.Logger().Debug("scene: node destroyed", "node", n.id, "name", n.name)
	return errors.Join(errs...)
}

// Walk calls fn for n and its descendants in depth-first pre-order.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) || n.destroyed {
		return
	}
	for _, c := range slices.Clone(n.kids) {
		if !c.destroyed {
			c.Walk(fn)
		}
	}
}
