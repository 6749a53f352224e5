// Package gimbal is a hierarchical transform library for scene graphs.
//
// A [Node] holds a local position, rotation and scale, an optional parent,
// and a list of children. World poses are composed lazily: mutators only set
// dirty flags on the node and its subtree, and [Node.World] or
// [Node.WorldMatrix] recompute what is stale on the next read.
//
// # Scene graph
//
//	root := gimbal.New("root")
//	arm := gimbal.New("arm")
//	arm.SetParent(root, false)
//	arm.SetPosition(mgl32.Vec3{1, 0, 0})
//
//	root.Move(mgl32.Vec3{10, 0, 0})
//	arm.World().Position // (11, 0, 0)
//
// Nodes never own each other. Children are weakly referenced, so keep nodes
// alive in a [Scene] (or in your own entity type). [Node.Dispose] detaches a
// node and turns its children into roots.
//
// # Composition
//
// [Pose.Mul] composes a parent pose with a child pose:
//
//	position = parent.Position + parent.RotationScale() * child.Position
//	rotation = parent.Rotation * child.Rotation
//	scale    = parent.Scale * child.Scale
//
// This is exact for uniform and axis-aligned scale chains, which is the
// contract the rest of the package relies on.
//
// # Dirty flags
//
// Each node has a local and a world [DirtyFlags] set. Renderers, physics
// bridges and other consumers register their own slot with
// [Node.AddWorldDirtyFlag] and poll it with [Node.WorldDirtyFlag]; a poll with
// reset=true observes each change at most once.
//
// # Animation
//
// The animation engine drives nodes through [Interpolator] values attached
// with [Node.AddInterpolator]. [Node.Update] advances them once per tick and
// invalidates the node once, however many channels moved. [Vec3Tween] and
// [QuatTween] are interpolators built on [gween].
//
// All operations are synchronous and must be called from one goroutine.
//
// [gween]: https://github.com/tanema/gween
package gimbal
