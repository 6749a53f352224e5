package gimbal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Local pose accessors ---

// Position returns the local position.
func (n *Node) Position() mgl32.Vec3 { return n.position }

// Rotation returns the local rotation.
func (n *Node) Rotation() mgl32.Quat { return n.rotation }

// Scale returns the local scale.
func (n *Node) Scale() mgl32.Vec3 { return n.scale }

// Local returns the local pose.
func (n *Node) Local() Pose {
	return Pose{Position: n.position, Rotation: n.rotation, Scale: n.scale}
}

// IsIdentity reports whether n has never been mutated away from the identity
// pose. Setting the identity pose explicitly does not restore it.
func (n *Node) IsIdentity() bool { return n.identity }

// --- Local mutators ---

// SetPosition sets the local position.
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.position = p
	n.markDirty()
}

// SetRotation sets the local rotation.
func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q
	n.markDirty()
}

// SetRotationEuler sets the local rotation from Euler angles in radians.
func (n *Node) SetRotationEuler(e mgl32.Vec3) {
	n.SetRotation(EulerToQuat(e))
}

// SetScale sets the local scale.
func (n *Node) SetScale(s mgl32.Vec3) {
	n.scale = s
	n.markDirty()
}

// Move translates the local position by d.
func (n *Node) Move(d mgl32.Vec3) {
	n.position = n.position.Add(d)
	n.markDirty()
}

// Rotate applies q after the current local rotation, in local space.
func (n *Node) Rotate(q mgl32.Quat) {
	n.rotation = n.rotation.Mul(q)
	n.markDirty()
}

// RotateAxis rotates by angle radians about axis, in local space.
func (n *Node) RotateAxis(angle float32, axis mgl32.Vec3) {
	n.Rotate(mgl32.QuatRotate(angle, axis))
}

// ApplyScale multiplies the local scale component-wise by s.
func (n *Node) ApplyScale(s mgl32.Vec3) {
	n.scale = mulVec3(n.scale, s)
	n.markDirty()
}

// Set writes v into the channel selected by index: IndexPosition,
// IndexRotation (Euler radians) or IndexScale. Panics on any other index.
func (n *Node) Set(index int, v mgl32.Vec3) {
	switch index {
	case IndexPosition:
		n.position = v
	case IndexRotation:
		n.rotation = EulerToQuat(v)
	case IndexScale:
		n.scale = v
	default:
		panic(fmt.Sprintf("gimbal: invalid channel index %d", index))
	}
	n.markDirty()
}

// --- World mutators ---

// SetPositionWorld sets the local position so that the world position
// becomes p.
func (n *Node) SetPositionWorld(p mgl32.Vec3) {
	if n.parent == nil {
		n.SetPosition(p)
		return
	}
	n.SetPosition(n.parent.World().InverseTransformPoint(p))
}

// SetRotationWorld sets the local rotation so that the world rotation
// becomes q.
func (n *Node) SetRotationWorld(q mgl32.Quat) {
	if n.parent == nil {
		n.SetRotation(q)
		return
	}
	n.SetRotation(n.parent.World().Rotation.Inverse().Mul(q))
}

// SetScaleWorld sets the local scale so that the world scale becomes s.
func (n *Node) SetScaleWorld(s mgl32.Vec3) {
	if n.parent == nil {
		n.SetScale(s)
		return
	}
	n.SetScale(mulVec3(s, safeReciprocal(n.parent.World().Scale)))
}

// --- Dirtiness ---

// markDirty records a local pose change: the identity fast path is dropped,
// every local flag is set, and the world flags of n and its whole subtree
// are set.
func (n *Node) markDirty() {
	n.markLocalDirty()
	n.MarkWorldDirty()
}

func (n *Node) markLocalDirty() {
	n.identity = false
	n.localDirty.SetAll(true)
}

// MarkWorldDirty sets every world flag on n and on all of its descendants.
// Use it when something the world pose depends on changed outside the local
// pose of n.
func (n *Node) MarkWorldDirty() {
	n.worldDirty.SetAll(true)
	n.eachChild(func(c *Node) {
		c.MarkWorldDirty()
	})
}

// MarkDirty forces every local and world flag of n and its subtree dirty and
// drops the identity fast path. Used after loading persisted state.
func (n *Node) MarkDirty() {
	n.markDirty()
}

// AddLocalDirtyFlag registers a slot in the local set and returns its index.
// The slot is set whenever the local pose of n changes.
func (n *Node) AddLocalDirtyFlag() int {
	return n.localDirty.Add()
}

// AddWorldDirtyFlag registers a slot in the world set and returns its index.
// The slot is set whenever the world pose of n may have changed.
func (n *Node) AddWorldDirtyFlag() int {
	return n.worldDirty.Add()
}

// LocalDirtyFlag returns the local slot i and clears it when reset is true.
// Panics if i is out of range or if reset is requested on a reserved slot.
func (n *Node) LocalDirtyFlag(i int, reset bool) bool {
	if reset && i < reservedLocalFlags {
		panic(fmt.Sprintf("gimbal: local dirty flag %d is reserved", i))
	}
	return n.localDirty.Get(i, reset)
}

// WorldDirtyFlag returns the world slot i and clears it when reset is true.
// Panics if i is out of range or if reset is requested on a reserved slot.
func (n *Node) WorldDirtyFlag(i int, reset bool) bool {
	if reset && i < reservedWorldFlags {
		panic(fmt.Sprintf("gimbal: world dirty flag %d is reserved", i))
	}
	return n.worldDirty.Get(i, reset)
}

// --- Cached readers ---

// Matrix returns the local matrix Translate * Rotate * Scale. Identity nodes
// return the identity matrix without touching the cache.
func (n *Node) Matrix() mgl32.Mat4 {
	if n.identity {
		return mgl32.Ident4()
	}
	if n.localDirty.Get(LocalMatrixFlag, true) {
		n.localMatrix = n.Local().Matrix()
	}
	return n.localMatrix
}

// World returns the world pose of n, recomputing it from the ancestor chain
// only when an ancestor or n itself changed since the last call.
//
// An identity node with a parent returns its parent's world pose directly
// and never fills its own cache.
func (n *Node) World() Pose {
	if !n.worldDirty.Get(WorldPoseFlag, false) {
		return n.world
	}
	if n.parent == nil {
		n.world = n.Local()
		n.worldDirty.Set(WorldPoseFlag, false)
		return n.world
	}
	if n.identity {
		return n.parent.World()
	}
	n.world = n.parent.World().Mul(n.Local())
	n.worldDirty.Set(WorldPoseFlag, false)
	return n.world
}

// WorldMatrix returns the matrix of World(), cached separately so repeated
// matrix reads do not rebuild it from the pose.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.worldDirty.Get(WorldMatrixFlag, true) {
		n.worldMatrix = n.World().Matrix()
	}
	return n.worldMatrix
}

// --- Composition ---

// Mul composes the local poses of n and o as parent * child.
func (n *Node) Mul(o *Node) Pose {
	return n.Local().Mul(o.Local())
}

// Inverse returns the inverse of the local pose of n.
func (n *Node) Inverse() Pose {
	return n.Local().Inverse()
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in n's local space to world space.
func (n *Node) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return n.World().TransformPoint(p)
}

// WorldToLocal converts a world-space point to n's local space.
func (n *Node) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return n.World().InverseTransformPoint(p)
}
