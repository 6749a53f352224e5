package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/gimbal"
)

// Transform links an entity to a gimbal node.
type Transform struct {
	Node *gimbal.Node
	flag int // world dirty flag slot registered by Attach
}

// TransformComponent is the Donburi component holding a Transform.
var TransformComponent = donburi.NewComponentType[Transform]()

// WorldChanged is published when the world matrix of an attached node
// changed.
type WorldChanged struct {
	Entity donburi.Entity
	Node   *gimbal.Node
	Matrix mgl32.Mat4
}

// WorldChangedEventType is the Donburi event type for WorldChanged.
var WorldChangedEventType = events.NewEventType[WorldChanged]()

var transforms = donburi.NewQuery(filter.Contains(TransformComponent))

// Attach creates an entity for n. The entity reports a change on the first
// UpdateSystem run after it was attached.
func Attach(world donburi.World, n *gimbal.Node) donburi.Entity {
	e := world.Create(TransformComponent)
	TransformComponent.SetValue(world.Entry(e), Transform{Node: n, flag: n.AddWorldDirtyFlag()})
	return e
}

// NodeOf returns the node attached to e, or nil if e is not a valid entity
// with a Transform.
func NodeOf(world donburi.World, e donburi.Entity) *gimbal.Node {
	if !world.Valid(e) {
		return nil
	}
	entry := world.Entry(e)
	if !entry.HasComponent(TransformComponent) {
		return nil
	}
	return TransformComponent.Get(entry).Node
}

// UpdateSystem advances the interpolators of every attached node by dt
// seconds, then publishes WorldChanged for each entity whose world matrix
// was invalidated. Entities whose node was disposed are removed.
//
// All nodes are updated before any flag is read, so a parent animated in
// the same run is reflected in its children's events.
func UpdateSystem(world donburi.World, dt float32) {
	var dead []donburi.Entity
	transforms.Each(world, func(entry *donburi.Entry) {
		t := TransformComponent.Get(entry)
		if t.Node == nil || t.Node.IsDisposed() {
			dead = append(dead, entry.Entity())
			return
		}
		t.Node.Update(dt)
	})
	for _, e := range dead {
		world.Remove(e)
	}

	transforms.Each(world, func(entry *donburi.Entry) {
		t := TransformComponent.Get(entry)
		if !t.Node.WorldDirtyFlag(t.flag, true) {
			return
		}
		WorldChangedEventType.Publish(world, WorldChanged{
			Entity: entry.Entity(),
			Node:   t.Node,
			Matrix: t.Node.WorldMatrix(),
		})
	})
}
