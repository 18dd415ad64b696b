package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PositionData is the world position colliders of an entity are anchored to.
type PositionData struct {
	X, Y float64
}

// Position is the component an Owner reads its anchor from.
var Position = donburi.NewComponentType[PositionData]()

// BodyData holds the collision state of an entity. The zero value is an
// active, collidable body with no colliders.
type BodyData struct {
	Owner     *Owner
	Colliders []*bramble.Collider

	// Disabled hides the body's colliders from queries.
	Disabled bool

	// Intangible hides the body's colliders from other colliders' queries
	// while still letting them query.
	Intangible bool

	// ContactTags are the tags DetectContacts queries this body's colliders
	// against. A body with no contact tags reports no contacts.
	ContactTags []bramble.Tag
}

// Body is the component Attach stores an entity's collision state in.
var Body = donburi.NewComponentType[BodyData]()

// Bodies matches every entity that can carry colliders.
var Bodies = donburi.NewQuery(filter.Contains(Position, Body))

// Contact is published by DetectContacts for each overlapping pair found.
type Contact struct {
	Entity        donburi.Entity
	Other         donburi.Entity
	Collider      *bramble.Collider
	OtherCollider *bramble.Collider
}

// ContactEventType is the Donburi event type for collider contacts.
// Subscribe to this in your ECS systems and call ProcessEvents each tick.
var ContactEventType = events.NewEventType[Contact]()

// --- Owner ---

// Owner is a non-owning handle that anchors colliders to a Donburi entity.
// It never keeps the entity alive: once the entity is removed from its world
// the owner reports no collision system, queries skip its colliders, and the
// collision system drops them on its next Update.
type Owner struct {
	world  donburi.World
	entity donburi.Entity
	system *bramble.CollisionSystem
}

// Entity returns the entity the owner refers to.
func (o *Owner) Entity() donburi.Entity {
	return o.entity
}

// Valid reports whether the entity still exists.
func (o *Owner) Valid() bool {
	return o.world.Valid(o.entity)
}

// Position returns the entity's Position, or (0, 0) once it is gone.
func (o *Owner) Position() (x, y float64) {
	if !o.Valid() {
		return 0, 0
	}
	entry := o.world.Entry(o.entity)
	if !entry.HasComponent(Position) {
		return 0, 0
	}
	p := Position.Get(entry)
	return p.X, p.Y
}

// Active reports whether the entity exists and its body is not disabled.
func (o *Owner) Active() bool {
	b := o.body()
	return b != nil && !b.Disabled
}

// Collidable reports whether the entity exists and its body is not
// intangible.
func (o *Owner) Collidable() bool {
	b := o.body()
	return b != nil && !b.Intangible
}

// Collisions returns the collision system the owner's colliders are
// registered with, or nil once the entity is gone or the owner is detached.
func (o *Owner) Collisions() *bramble.CollisionSystem {
	if o.system == nil || !o.Valid() {
		return nil
	}
	return o.system
}

func (o *Owner) body() *BodyData {
	if !o.Valid() {
		return nil
	}
	entry := o.world.Entry(o.entity)
	if !entry.HasComponent(Body) {
		return nil
	}
	return Body.Get(entry)
}

// --- Wiring ---

// Attach anchors colliders to entity and registers them with sys. The entity
// gets a Body component if it has none; Position must already be present.
// Calling Attach again for the same entity adds colliders to the existing
// owner.
// Panics if the entity does not exist or has no Position.
func Attach(world donburi.World, entity donburi.Entity, sys *bramble.CollisionSystem, colliders ...*bramble.Collider) *Owner {
	if !world.Valid(entity) {
		panic("bramble/ecs: attach to invalid entity")
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(Position) {
		panic("bramble/ecs: entity has no Position component")
	}
	if !entry.HasComponent(Body) {
		entry.AddComponent(Body)
	}
	body := Body.Get(entry)
	if body.Owner == nil {
		body.Owner = &Owner{world: world, entity: entity, system: sys}
	}
	for _, c := range colliders {
		c.SetOwner(body.Owner)
		body.Colliders = append(body.Colliders, c)
		sys.Register(c)
	}
	return body.Owner
}

// Detach unregisters every collider of entity and clears its owner, leaving
// the Body component in place. No-op if the entity has no body.
func Detach(world donburi.World, entity donburi.Entity) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(Body) {
		return
	}
	body := Body.Get(entry)
	for _, c := range body.Colliders {
		if s := c.System(); s != nil {
			s.Unregister(c)
		}
		c.SetOwner(nil)
	}
	if body.Owner != nil {
		body.Owner.system = nil
	}
	body.Colliders = nil
	body.Owner = nil
}

// OwnerOf returns the owner attached to entity, or nil.
func OwnerOf(world donburi.World, entity donburi.Entity) *Owner {
	if !world.Valid(entity) {
		return nil
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(Body) {
		return nil
	}
	return Body.Get(entry).Owner
}

// DetectContacts queries every body with ContactTags at its current position
// and publishes a Contact for each overlapping collider owned by another
// entity. Colliders owned by something other than an entity are ignored.
func DetectContacts(world donburi.World) {
	Bodies.Each(world, func(entry *donburi.Entry) {
		body := Body.Get(entry)
		if body.Owner == nil || len(body.ContactTags) == 0 {
			return
		}
		x, y := body.Owner.Position()
		for _, c := range body.Colliders {
			for _, hit := range c.CollideList(x, y, body.ContactTags...) {
				other, ok := hit.Owner().(*Owner)
				if !ok {
					continue
				}
				ContactEventType.Publish(world, Contact{
					Entity:        entry.Entity(),
					Other:         other.entity,
					Collider:      c,
					OtherCollider: hit,
				})
			}
		}
	})
}
