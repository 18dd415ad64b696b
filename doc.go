// Package bramble is a 2D collision detection core for [Ebitengine] games.
//
// Bramble provides a scene graph of owner nodes, seven collider shapes, a
// quadtree broad phase rebuilt once per tick, and a narrow phase covering
// every pair of shapes. It detects overlap at discrete query time; it does
// not resolve collisions or simulate physics.
//
// # Quick start
//
// Create a scene, attach nodes with colliders, and call [Scene.Update] once
// per tick from your [ebiten.Game]:
//
//	const (
//		TagSolid bramble.Tag = iota
//		TagPlayer
//	)
//
//	scene := bramble.NewScene()
//
//	wall := bramble.NewNode("wall")
//	wall.X, wall.Y = 100, 0
//	wall.AddCollider(bramble.NewBox(16, 240, TagSolid))
//	scene.Root().AddChild(wall)
//
//	hero := bramble.NewNode("hero")
//	body := bramble.NewBox(12, 12, TagPlayer)
//	hero.AddCollider(body)
//	hero.OnUpdate = func(n *bramble.Node, dt float64) {
//		nx := n.X + 60*dt
//		if !body.Overlap(nx, n.Y, TagSolid) {
//			n.X = nx
//		}
//	}
//	scene.Root().AddChild(hero)
//
// # Owners
//
// Every collider is anchored to an [Owner], which supplies a world position,
// an active flag, a collidable flag, and the collision system of the live
// scene it belongs to. [Node] is the scene graph owner; package ecs adapts
// [Donburi] entities. A collider never keeps its owner alive: when the owner
// is disposed or detached the collider is ignored by queries and dropped
// from the registry on the next [CollisionSystem.Update].
//
// # Shapes
//
// Create colliders with typed constructors: [NewBox], [NewCircle],
// [NewPoint], [NewLine], [NewPolygon], [NewGrid], and [NewPixel]. A
// collider's bounding box starts at owner position + (X, Y) - (OriginX,
// OriginY); [Collider.CenterOrigin] centers the shape on its owner.
//
// Touching is not overlapping: two boxes that share an edge, or two circles
// whose centers are exactly the sum of their radii apart, do not collide.
//
// # Queries
//
// Queries take the position the owner would have and test the collider
// there without moving the owner:
//
//	if c.Overlap(x, y+1, TagSolid) { ... }        // any solid below?
//	hit := c.Collide(x, y)                         // first hit, any known tag
//	all := c.CollideList(x, y, TagHazard)          // every hazard
//	who := c.CollideOwners(x, y, TagEnemy)         // each enemy owner once
//	c.OverlapOwner(x, y, boss)                     // a specific owner
//
// An empty tag list matches every tag the scene has ever seen. Colliders
// never report their own owner, and candidates whose owner is inactive or
// not collidable are skipped. A collider without a live owner finds nothing.
//
// # Tilemaps and masks
//
// A [Grid] holds tile occupancy for [NewGrid]; package tmx builds grids from
// [Tiled] maps. A [PixelMask] holds texture alpha for [NewPixel]; pixel
// tests cost time proportional to the overlapping area.
//
// # Debug view
//
// [Scene.DrawDebug] outlines every collider. Add a [Camera] with
// [Scene.NewCamera] to zoom or follow an owner; the overlay then draws only
// what the camera sees, and [Camera.PickAt] turns a cursor position into the
// colliders under it.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
// [Tiled]: https://www.mapeditor.org
package bramble
