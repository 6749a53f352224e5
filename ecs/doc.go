// Package ecs connects gimbal transform hierarchies to a [Donburi] world.
//
// [Attach] creates an entity that carries a [Transform] component pointing at
// a gimbal node. [UpdateSystem] advances the node animations of every such
// entity and publishes a [WorldChanged] event for each entity whose world
// matrix changed since the previous run. Events are queued; drain them with
// events.ProcessAllEvents or WorldChangedEventType.ProcessEvents.
//
// Usage:
//
//	world := donburi.NewWorld()
//	e := ecs.Attach(world, node)
//	ecs.WorldChangedEventType.Subscribe(world, onMoved)
//
//	// each frame
//	ecs.UpdateSystem(world, dt)
//	events.ProcessAllEvents(world)
//
// The world does not own the nodes' hierarchy. Keep parents alive through a
// gimbal.Scene or another owner.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
