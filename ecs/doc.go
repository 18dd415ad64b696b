// Package ecs anchors bramble colliders to [Donburi] entities.
//
// An entity needs a [Position] component; [Attach] adds a [Body] component
// holding its colliders and an [Owner] handle that implements
// bramble.Owner. The handle checks the entity with World.Valid on every
// access, so removing the entity orphans its colliders without any further
// bookkeeping:
//
//	e := world.Create(ecs.Position)
//	ecs.Position.Get(world.Entry(e)).X = 32
//	ecs.Attach(world, e, scene.Collisions(), bramble.NewBox(16, 16, TagEnemy))
//
// [DetectContacts] turns overlaps into [ContactEventType] events:
//
//	ecs.DetectContacts(world)
//	ecs.ContactEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
