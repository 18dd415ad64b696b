package bramble

// Owner anchors colliders in the world. The collision system only reads an
// owner: it never moves, updates, or retains it beyond the colliders that
// point at it.
//
// Node implements Owner for scene graph objects. The ecs package implements
// it for donburi entities.
type Owner interface {
	// Position returns the world-space anchor that collider offsets are
	// relative to.
	Position() (x, y float64)

	// Active reports whether the owner currently takes part in the game.
	// Colliders of inactive owners are never returned by queries.
	Active() bool

	// Collidable reports whether other colliders may find this owner's
	// colliders. An owner that is not collidable can still issue queries.
	Collidable() bool

	// Collisions returns the collision system of the live scene the owner
	// belongs to, or nil when the owner has been detached or destroyed.
	Collisions() *CollisionSystem
}

// live reports whether o is non-nil and still attached to a collision system.
func live(o Owner) bool {
	return o != nil && o.Collisions() != nil
}
