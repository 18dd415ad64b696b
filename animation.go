package bramble

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenOffset, TweenRotation)
// and call Update(dt) each frame. If the target node is disposed, the group
// stops immediately.
//
// A position tween can be made collision-aware with BlockOn: the group then
// stops short of any step that would make the given collider overlap.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	after  func()

	// Collision blocking (position tweens only)
	blocker   *Collider
	blockTags []Tag

	Done    bool
	Blocked bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur. If the group is blocked and the next step would overlap,
// Done and Blocked are set and the fields keep their previous values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	var next [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		next[i] = float64(val)
		if !finished {
			allDone = false
		}
	}

	if g.blocker != nil && g.wouldCollide(next[0], next[1]) {
		g.Done = true
		g.Blocked = true
		return
	}

	for i := 0; i < g.count; i++ {
		*g.fields[i] = next[i]
	}
	g.Done = allDone

	if g.after != nil {
		g.after()
	}
}

// wouldCollide reports whether moving the target to local (x, y) would make
// the blocking collider overlap one of the block tags.
func (g *TweenGroup) wouldCollide(x, y float64) bool {
	wx, wy := g.target.Position()
	wx += x - g.target.X
	wy += y - g.target.Y
	return g.blocker.Overlap(wx, wy, g.blockTags...)
}

// BlockOn makes a position tween stop before any step that would make c
// overlap a collider carrying one of tags (every known tag when none are
// given). c must belong to the tweened node. Returns g for chaining.
// Panics if g is not a position tween or c belongs to another owner.
func (g *TweenGroup) BlockOn(c *Collider, tags ...Tag) *TweenGroup {
	if g.target == nil || g.count != 2 || g.fields[0] != &g.target.X {
		panic("bramble: BlockOn requires a position tween")
	}
	if c.owner != Owner(g.target) {
		panic("bramble: BlockOn collider must belong to the tweened node")
	}
	g.blocker = c
	g.blockTags = tags
	return g
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenOffset creates a TweenGroup that animates a collider's offset from
// its owner, such as a hitbox that extends during an attack.
func TweenOffset(c *Collider, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	if n, ok := c.owner.(*Node); ok {
		g.target = n
	}
	g.tweens[0] = gween.New(float32(c.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.Y), float32(toY), duration, fn)
	g.fields[0] = &c.X
	g.fields[1] = &c.Y
	return g
}

// TweenRotation creates a TweenGroup that animates a polygon collider's
// rotation (in radians).
// Panics if c is not a polygon.
func TweenRotation(c *Collider, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if c.Kind != ShapePolygon {
		panic("bramble: TweenRotation requires a polygon collider")
	}
	g := &TweenGroup{count: 1, after: func() { c.polyDirty = true }}
	if n, ok := c.owner.(*Node); ok {
		g.target = n
	}
	g.tweens[0] = gween.New(float32(c.rotation), float32(to), duration, fn)
	g.fields[0] = &c.rotation
	return g
}
