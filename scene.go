package gimbal

// Scene owns a set of nodes and drives their per-frame update pass. Nodes
// never own each other, so something has to keep them alive: a Scene is the
// simplest such owner. Adding a node does not add its descendants.
type Scene struct {
	nodes []*Node
	debug bool
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add takes ownership of nodes. Nil and already-owned nodes are skipped.
func (s *Scene) Add(nodes ...*Node) {
	for _, n := range nodes {
		if n == nil || s.indexOf(n) >= 0 {
			continue
		}
		if s.debug {
			debugCheckDisposed(n, "Scene.Add")
		}
		s.nodes = append(s.nodes, n)
	}
}

// Remove releases ownership of n without disposing it. Reports whether n was
// owned by s.
func (s *Scene) Remove(n *Node) bool {
	i := s.indexOf(n)
	if i < 0 {
		return false
	}
	copy(s.nodes[i:], s.nodes[i+1:])
	s.nodes[len(s.nodes)-1] = nil
	s.nodes = s.nodes[:len(s.nodes)-1]
	return true
}

// Nodes returns the owned nodes. The returned slice MUST NOT be mutated by
// the caller.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of owned nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Find returns the first owned node with the given name, or nil.
func (s *Scene) Find(name string) *Node {
	for _, n := range s.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Update advances the interpolators of every owned node by dt seconds.
// Disposed nodes are released.
func (s *Scene) Update(dt float32) {
	live := s.nodes[:0]
	for _, n := range s.nodes {
		if n.disposed {
			continue
		}
		n.Update(dt)
		live = append(live, n)
	}
	clear(s.nodes[len(live):])
	s.nodes = live
}

// SetDebugMode enables or disables debug checks: panics on tree operations
// involving disposed nodes and warnings for deep trees or wide nodes.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations, which have no scene pointer, can run debug checks.
var globalDebug bool

func (s *Scene) indexOf(n *Node) int {
	for i, o := range s.nodes {
		if o == n {
			return i
		}
	}
	return -1
}
