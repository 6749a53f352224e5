package gimbal

import (
	"weak"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene graph transform: a local position/rotation/scale with a
// parent back-reference, a non-owning child list, and lazily recomputed
// local and world caches.
//
// Nodes never own each other. Children are held through weak pointers, so a
// child list does not keep a node alive; ownership belongs to a Scene or to
// whatever entity embeds the node. A disposed parent clears the parent
// reference of every child it still has.
//
// The zero Node is not ready for use: create nodes with New or NewWithPose.
// A Node may be copied into an embedding struct before it is attached to a
// tree; once it has a parent, children or registered dirty flags, use it
// only through a pointer.
//
// All methods must be called from a single goroutine.
type Node struct {
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []weak.Pointer[Node]

	// Local pose (authoritative)
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	// Caches
	localMatrix mgl32.Mat4
	world       Pose
	worldMatrix mgl32.Mat4
	localDirty  DirtyFlags
	worldDirty  DirtyFlags

	// identity stays true until the first mutation and is never re-derived.
	identity bool

	interpolators []binding

	disposed bool
}

// New creates a root node with the identity pose.
func New(name string) *Node {
	n := &Node{}
	n.setup(name)
	return n
}

func (n *Node) setup(name string) {
	*n = Node{
		ID:         nextNodeID(),
		Name:       name,
		rotation:   mgl32.QuatIdent(),
		scale:      oneVec3,
		identity:   true,
		localDirty: newDirtyFlags(reservedLocalFlags),
		worldDirty: newDirtyFlags(reservedWorldFlags),
	}
}

// NewWithPose creates a root node with the given local pose.
func NewWithPose(name string, p Pose) *Node {
	n := New(name)
	n.position = p.Position
	n.rotation = p.Rotation
	n.scale = p.Scale
	n.markDirty()
	return n
}

// --- Tree manipulation ---

// SetParent attaches n under parent, or detaches it when parent is nil.
//
// When relocate is true and parent is not nil, the local position and
// rotation are recomputed so that n keeps its current world position and
// rotation under the new parent. Scale is left untouched. relocate is ignored
// when detaching.
//
// Panics if parent is n or one of its descendants.
func (n *Node) SetParent(parent *Node, relocate bool) {
	if globalDebug {
		debugCheckDisposed(n, "SetParent (child)")
		if parent != nil {
			debugCheckDisposed(parent, "SetParent (parent)")
		}
	}
	if parent != nil && isAncestor(n, parent) {
		panic("gimbal: reparenting would create a cycle")
	}

	var world Pose
	if relocate && parent != nil {
		world = n.World()
	}

	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	if parent == nil {
		n.MarkWorldDirty()
		return
	}

	if relocate {
		pw := parent.World()
		inv := pw.Rotation.Inverse()
		n.position = inv.Rotate(world.Position.Sub(pw.Position))
		n.rotation = inv.Mul(world.Rotation)
		n.markLocalDirty()
	}

	n.parent = parent
	parent.children = append(parent.children, weak.Make(n))
	n.MarkWorldDirty()

	if globalDebug {
		debugCheckTreeDepth(n)
		debugCheckChildCount(parent)
	}
}

// AddChild attaches child under n without relocation.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("gimbal: cannot add nil child")
	}
	child.SetParent(n, false)
}

// RemoveFromParent detaches n from its parent. No-op for a root.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.SetParent(nil, false)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the topmost ancestor of n (n itself for a root).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the live children of n in attachment order. The slice is
// freshly allocated.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	n.eachChild(func(c *Node) {
		out = append(out, c)
	})
	return out
}

// NumChildren returns the number of live children.
func (n *Node) NumChildren() int {
	count := 0
	n.eachChild(func(*Node) { count++ })
	return count
}

// Walk calls fn for n and every descendant, depth first, parents before
// children.
// fn may reparent nodes; the child list is snapshotted before descending.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose detaches n from its parent, turns every child into a root, drops
// all interpolators and marks n as disposed. Children are not disposed.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.eachChild(func(c *Node) {
		c.parent = nil
		c.MarkWorldDirty()
	})
	n.children = nil
	n.interpolators = nil
	n.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// eachChild calls fn for every live child and compacts expired entries.
func (n *Node) eachChild(fn func(*Node)) {
	live := n.children[:0]
	for _, wp := range n.children {
		c := wp.Value()
		if c == nil || c.parent != n {
			continue
		}
		live = append(live, wp)
		fn(c)
	}
	clear(n.children[len(live):])
	n.children = live
}

// removeChild drops child from n.children without touching child.parent.
func (n *Node) removeChild(child *Node) {
	self := weak.Make(child)
	for i, wp := range n.children {
		if wp == self {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = weak.Pointer[Node]{}
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
