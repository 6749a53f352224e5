package gimbal

import (
	"runtime"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Constructor defaults ---

func TestNewDefaults(t *testing.T) {
	n := New("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.Position() != (mgl32.Vec3{}) {
		t.Errorf("Position = %v, want zero", n.Position())
	}
	if n.Rotation() != mgl32.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", n.Rotation())
	}
	if n.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale())
	}
	if !n.IsIdentity() {
		t.Error("new node should be identity")
	}
	if n.Parent() != nil {
		t.Error("new node should have no parent")
	}
	if n.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", n.NumChildren())
	}
}

func TestNewUniqueIDs(t *testing.T) {
	a := New("a")
	b := New("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

func TestNewWithPose(t *testing.T) {
	p := NewPose(mgl32.Vec3{1, 2, 3}, rotZ(45), mgl32.Vec3{2, 2, 2})
	n := NewWithPose("posed", p)
	if n.Local() != p {
		t.Errorf("Local = %+v, want %+v", n.Local(), p)
	}
	if n.IsIdentity() {
		t.Error("posed node should not be identity")
	}
}

// --- Tree manipulation ---

func TestSetParentLinksBothWays(t *testing.T) {
	parent := New("parent")
	child := New("child")
	child.SetParent(parent, false)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	kids := parent.Children()
	if len(kids) != 1 || kids[0] != child {
		t.Errorf("parent.Children() = %v, want [child]", kids)
	}
}

func TestSetParentMovesBetweenParents(t *testing.T) {
	p1 := New("p1")
	p2 := New("p2")
	child := New("child")

	child.SetParent(p1, false)
	child.SetParent(p2, false)

	if p1.NumChildren() != 0 {
		t.Errorf("p1.NumChildren = %d, want 0", p1.NumChildren())
	}
	if p2.NumChildren() != 1 {
		t.Errorf("p2.NumChildren = %d, want 1", p2.NumChildren())
	}
	if child.Parent() != p2 {
		t.Error("child.Parent() should be p2")
	}
}

func TestSetParentSameParentKeepsSingleEntry(t *testing.T) {
	parent := New("parent")
	child := New("child")
	child.SetParent(parent, false)
	child.SetParent(parent, false)
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestSetParentNilDetaches(t *testing.T) {
	parent := New("parent")
	child := New("child")
	child.SetParent(parent, false)
	child.SetParent(nil, true)

	if child.Parent() != nil {
		t.Error("child should be a root")
	}
	if parent.NumChildren() != 0 {
		t.Errorf("parent.NumChildren = %d, want 0", parent.NumChildren())
	}
}

func TestSetParentCyclePanics(t *testing.T) {
	a := New("a")
	b := New("b")
	c := New("c")
	b.SetParent(a, false)
	c.SetParent(b, false)

	for _, tc := range []struct {
		name         string
		node, parent *Node
	}{
		{"self", a, a},
		{"child", a, b},
		{"grandchild", a, c},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tc.node.SetParent(tc.parent, false)
		})
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New("n").AddChild(nil)
}

func TestRemoveFromParent(t *testing.T) {
	parent := New("parent")
	child := New("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent() != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	child.RemoveFromParent() // no-op on a root
}

func TestRootAndWalk(t *testing.T) {
	root := New("root")
	a := New("a")
	b := New("b")
	c := New("c")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(c)

	if c.Root() != root {
		t.Errorf("c.Root() = %q, want root", c.Root().Name)
	}

	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Name) })
	want := []string{"root", "a", "c", "b"}
	if len(names) != len(want) {
		t.Fatalf("Walk visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Walk visited %v, want %v", names, want)
		}
	}
}

// --- Disposal ---

func TestDisposeOrphansChildren(t *testing.T) {
	grand := New("grand")
	parent := New("parent")
	child := New("child")
	parent.SetParent(grand, false)
	child.SetParent(parent, false)

	grand.SetPosition(mgl32.Vec3{100, 0, 0})
	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	child.SetPosition(mgl32.Vec3{1, 0, 0})
	assertVec(t, "before", child.World().Position, mgl32.Vec3{111, 0, 0})

	parent.Dispose()

	if !parent.IsDisposed() {
		t.Error("parent should be disposed")
	}
	if child.Parent() != nil {
		t.Error("child parent should be cleared")
	}
	if grand.NumChildren() != 0 {
		t.Errorf("grand.NumChildren = %d, want 0", grand.NumChildren())
	}
	if child.IsDisposed() {
		t.Error("children must survive their parent")
	}
	assertVec(t, "after", child.World().Position, mgl32.Vec3{1, 0, 0})
}

func TestDisposeTwice(t *testing.T) {
	n := New("n")
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should stay disposed")
	}
}

// attachTemporaryChild attaches a child that nothing else references.
//
//go:noinline
func attachTemporaryChild(parent *Node) {
	New("temp").SetParent(parent, false)
}

func TestChildListDoesNotOwnChildren(t *testing.T) {
	parent := New("parent")
	kept := New("kept")
	kept.SetParent(parent, false)
	attachTemporaryChild(parent)

	runtime.GC()
	runtime.GC()

	if got := parent.NumChildren(); got != 1 {
		t.Fatalf("NumChildren = %d, want 1 after the unowned child was collected", got)
	}
	if parent.Children()[0] != kept {
		t.Error("surviving child should be kept")
	}
	runtime.KeepAlive(kept)
}

type actor struct {
	Node
	health int
}

func TestEmbeddedNodeReceivesCascade(t *testing.T) {
	parent := New("parent")
	a := &actor{Node: *New("a"), health: 3}
	a.SetParent(parent, false)
	a.SetPosition(mgl32.Vec3{1, 0, 0})
	a.World()

	runtime.GC()
	runtime.GC()

	if got := parent.NumChildren(); got != 1 {
		t.Fatalf("NumChildren = %d, want 1", got)
	}
	if parent.Children()[0] != &a.Node {
		t.Error("child list should hold the embedded node")
	}

	parent.Move(mgl32.Vec3{10, 0, 0})
	assertVec(t, "embedded world", a.World().Position, mgl32.Vec3{11, 0, 0})

	a.RemoveFromParent()
	if got := parent.NumChildren(); got != 0 {
		t.Errorf("NumChildren after RemoveFromParent = %d, want 0", got)
	}
	runtime.KeepAlive(a)
}
