package scene

// Scene is a tree of nodes under a single root, with a selection.
type Scene struct {
	root      *Node
	selection *Selection
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{root: NewNode(name), selection: NewSelection()}
}

// Root returns the root node.
func (s *Scene) Root() *Node { return s.root }

// Selection returns the selection of the scene.
func (s *Scene) Selection() *Selection { return s.selection }

// Add adds n under the root.
func (s *Scene) Add(n *Node) { s.root.AddChild(n) }

// Walk visits every node in depth-first pre-order, root first.
func (s *Scene) Walk(fn func(*Node) bool) { s.root.Walk(fn) }

// Find returns the node with the given id, or nil.
func (s *Scene) Find(id string) *Node {
	var found *Node
	s.root.Walk(func(n *Node) bool {
		if n.id == id {
			found = n
		}
		return found == nil
	})
	return found
}

// Components returns every component of type T under the root, in walk
// order.
func Components[T any](s *Scene) []T {
	var out []T
	s.Walk(func(n *Node) bool {
		for _, c := range n.components {
			if t, ok := c.(T); ok {
				out = append(out, t)
			}
		}
		return true
	})
	return out
}

// Destroy destroys the whole tree and clears the selection.
func (s *Scene) Destroy() error {
	s.selection.Clear()
	return s.root.Destroy()
}
