// Package scene is a small in-memory scene graph for hosting debug
// drawing.
//
// Nodes form a tree under a Scene root. A node carries a transform, a
// layer, user components and hidden attachments. Attachments are child
// resources that are never listed among the components; draw contexts
// attach themselves there. Destroying a node closes every attachment that
// implements io.Closer.
//
// The Selection tracks which nodes are selected or focused in the host UI.
package scene
