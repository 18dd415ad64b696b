package bramble

import (
	"fmt"
	"math"
)

// Collider is a collision shape attached to an Owner. A single flat struct
// is used for all shape kinds, like Node is for all node types; Kind selects
// which field group is meaningful. Create colliders with the typed
// constructors: NewBox, NewCircle, NewPoint, NewLine, NewPolygon, NewGrid,
// and NewPixel.
//
// The bounding box of every kind starts at
//
//	Left = owner.X + X - OriginX
//	Top  = owner.Y + Y - OriginY
//
// and is never cached across owner moves.
type Collider struct {
	Kind ShapeKind

	// Offset from the owner's position, and pivot subtracted from it.
	X, Y             float64
	OriginX, OriginY float64

	// Collidable false hides this collider from other colliders' queries.
	// It can still issue queries of its own.
	Collidable bool

	// Box fields (ShapeBox; ShapePoint is fixed at 1x1)
	Width, Height float64

	// Circle fields (ShapeCircle)
	Radius float64

	// Line fields (ShapeLine), local endpoints
	P1, P2 Vec2

	// Grid fields (ShapeGrid)
	Grid *Grid

	// Pixel fields (ShapePixel)
	Mask *PixelMask

	// Polygon fields (ShapePolygon). Transform changes go through setters
	// so the transformed points can be memoized.
	points     []Vec2
	rotation   float64
	scaleX     float64
	scaleY     float64
	flipX      bool
	flipY      bool
	polyDirty  bool
	polyLocal  []Vec2 // points after rotation/scale/flip, before offset
	polyBounds Rect   // bounds of polyLocal
	polyPivotX float64
	polyPivotY float64

	// Membership
	tags   []Tag
	owner  Owner
	system *CollisionSystem
}

func newCollider(kind ShapeKind, tags []Tag) *Collider {
	c := &Collider{Kind: kind, Collidable: true}
	c.AddTag(tags...)
	return c
}

// NewBox creates an axis-aligned box collider.
func NewBox(width, height float64, tags ...Tag) *Collider {
	if width < 0 || height < 0 {
		panic("bramble: box size must not be negative")
	}
	c := newCollider(ShapeBox, tags)
	c.Width = width
	c.Height = height
	return c
}

// NewCircle creates a circle collider. Its bounding box is 2r x 2r, so with a
// zero origin the circle's center sits at (owner.X + X + r, owner.Y + Y + r).
// Call CenterOrigin to center it on the owner instead.
func NewCircle(radius float64, tags ...Tag) *Collider {
	if radius < 0 {
		panic("bramble: circle radius must not be negative")
	}
	c := newCollider(ShapeCircle, tags)
	c.Radius = radius
	return c
}

// NewPoint creates a point collider at the owner's anchor plus offset.
func NewPoint(tags ...Tag) *Collider {
	c := newCollider(ShapePoint, tags)
	c.Width = 1
	c.Height = 1
	return c
}

// NewLine creates a segment collider between two local endpoints.
func NewLine(x1, y1, x2, y2 float64, tags ...Tag) *Collider {
	c := newCollider(ShapeLine, tags)
	c.P1 = Vec2{x1, y1}
	c.P2 = Vec2{x2, y2}
	return c
}

// NewPolygon creates a convex polygon collider from local points. Concave
// point lists are accepted but give incorrect overlap results.
// Panics if fewer than three points are given.
func NewPolygon(points []Vec2, tags ...Tag) *Collider {
	if len(points) < 3 {
		panic("bramble: polygon needs at least 3 points")
	}
	c := newCollider(ShapePolygon, tags)
	c.points = append([]Vec2(nil), points...)
	c.scaleX = 1
	c.scaleY = 1
	c.polyDirty = true
	return c
}

// NewGrid creates a tilemap collider with an empty cols x rows occupancy
// table.
func NewGrid(cols, rows int, tileW, tileH float64, tags ...Tag) *Collider {
	return NewGridFrom(NewGridTable(cols, rows, tileW, tileH), tags...)
}

// NewGridFrom creates a tilemap collider backed by an existing table.
func NewGridFrom(g *Grid, tags ...Tag) *Collider {
	if g == nil {
		panic("bramble: nil grid")
	}
	c := newCollider(ShapeGrid, tags)
	c.Grid = g
	return c
}

// NewPixel creates a collider backed by a texture's alpha channel.
func NewPixel(mask *PixelMask, tags ...Tag) *Collider {
	if mask == nil {
		panic("bramble: nil pixel mask")
	}
	c := newCollider(ShapePixel, tags)
	c.Mask = mask
	return c
}

// String returns a short description for debugging.
func (c *Collider) String() string {
	b := c.Bounds()
	return fmt.Sprintf("%s(%.4g,%.4g %.4gx%.4g)", c.Kind, b.X, b.Y, b.Width, b.Height)
}

// --- Position & origin ---

// SetPosition sets the collider's offset from its owner.
func (c *Collider) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// SetOrigin sets the pivot subtracted from the offset.
func (c *Collider) SetOrigin(x, y float64) {
	c.OriginX = x
	c.OriginY = y
	if c.Kind == ShapePolygon {
		c.polyDirty = true
	}
}

// CenterOrigin places the origin at the center of the shape's local extent,
// so the shape is centered on the owner's anchor plus offset.
func (c *Collider) CenterOrigin() {
	switch c.Kind {
	case ShapeLine:
		lb := Line{c.P1, c.P2}.Bounds()
		c.SetOrigin(lb.X+lb.Width/2, lb.Y+lb.Height/2)
	case ShapePolygon:
		// Pivot on the untransformed shape so rotation spins it in place.
		lb := Polygon{Points: c.points}.Bounds()
		c.SetOrigin(lb.X+lb.Width/2, lb.Y+lb.Height/2)
	case ShapePoint:
		c.SetOrigin(0, 0)
	default:
		w, h := c.localSize()
		c.SetOrigin(w/2, h/2)
	}
}

// Owner returns the owner the collider is attached to, or nil.
func (c *Collider) Owner() Owner {
	return c.owner
}

// SetOwner attaches the collider to o, or orphans it when o is nil. The
// collider holds no other reference to o; when the owner goes away the
// collision system drops the collider on its next Update.
// Panics if the collider already belongs to a different owner.
func (c *Collider) SetOwner(o Owner) {
	if o != nil && c.owner != nil && c.owner != o {
		panic("bramble: collider already has an owner")
	}
	c.owner = o
}

// System returns the collision system the collider is registered with, or nil.
func (c *Collider) System() *CollisionSystem {
	return c.system
}

// --- Tags ---

// AddTag adds tags to the collider. Adding a tag it already carries is a
// no-op. Tags added while registered are merged into the system's known tags.
func (c *Collider) AddTag(tags ...Tag) {
	for _, t := range tags {
		if !c.HasTag(t) {
			c.tags = append(c.tags, t)
		}
	}
	if c.system != nil {
		c.system.addKnownTags(tags)
	}
}

// RemoveTag removes tags from the collider. Removing an absent tag is a no-op.
func (c *Collider) RemoveTag(tags ...Tag) {
	for _, t := range tags {
		for i, have := range c.tags {
			if have == t {
				c.tags = append(c.tags[:i], c.tags[i+1:]...)
				break
			}
		}
	}
}

// HasTag reports whether the collider carries t.
func (c *Collider) HasTag(t Tag) bool {
	for _, have := range c.tags {
		if have == t {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the collider carries at least one of tags.
func (c *Collider) HasAnyTag(tags []Tag) bool {
	for _, t := range tags {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// Tags returns the collider's tags in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (c *Collider) Tags() []Tag {
	return c.tags
}

// --- Polygon transform ---

// Points returns the polygon's local points as given to NewPolygon or
// SetPoints, before any transform.
func (c *Collider) Points() []Vec2 {
	return c.points
}

// SetPoints replaces the polygon's local points.
// Panics if fewer than three points are given.
func (c *Collider) SetPoints(points []Vec2) {
	if len(points) < 3 {
		panic("bramble: polygon needs at least 3 points")
	}
	c.points = append(c.points[:0], points...)
	c.polyDirty = true
}

// Rotation returns the polygon rotation in radians.
func (c *Collider) Rotation() float64 { return c.rotation }

// SetRotation sets the polygon rotation (in radians) about the origin.
func (c *Collider) SetRotation(r float64) {
	c.rotation = r
	c.polyDirty = true
}

// Scale returns the polygon scale factors.
func (c *Collider) Scale() (sx, sy float64) { return c.scaleX, c.scaleY }

// SetScale sets the polygon scale about the origin.
func (c *Collider) SetScale(sx, sy float64) {
	c.scaleX = sx
	c.scaleY = sy
	c.polyDirty = true
}

// Flip returns the polygon mirror flags.
func (c *Collider) Flip() (x, y bool) { return c.flipX, c.flipY }

// SetFlip mirrors the polygon horizontally and/or vertically about the origin.
func (c *Collider) SetFlip(x, y bool) {
	c.flipX = x
	c.flipY = y
	c.polyDirty = true
}

// transformedPoints returns the polygon's local points with rotation, scale
// and flip applied, recomputing them only when a transform input changed.
func (c *Collider) transformedPoints() []Vec2 {
	if c.polyDirty || c.polyPivotX != c.OriginX || c.polyPivotY != c.OriginY {
		m := shapeTransform(c.rotation, c.scaleX, c.scaleY, c.flipX, c.flipY, c.OriginX, c.OriginY)
		c.polyLocal = c.polyLocal[:0]
		for _, p := range c.points {
			x, y := transformPoint(m, p.X, p.Y)
			c.polyLocal = append(c.polyLocal, Vec2{x, y})
		}
		c.polyBounds = Polygon{Points: c.polyLocal}.Bounds()
		c.polyPivotX = c.OriginX
		c.polyPivotY = c.OriginY
		c.polyDirty = false
	}
	return c.polyLocal
}

// --- Bounds ---

// localBounds returns the shape's extent relative to its top-left anchor
// (owner + offset - origin). Only lines and polygons can start away from 0.
func (c *Collider) localBounds() Rect {
	switch c.Kind {
	case ShapeLine:
		return Line{c.P1, c.P2}.Bounds()
	case ShapePolygon:
		c.transformedPoints()
		return c.polyBounds
	}
	w, h := c.localSize()
	return Rect{0, 0, w, h}
}

// localSize returns the width and height of the shape.
func (c *Collider) localSize() (w, h float64) {
	switch c.Kind {
	case ShapeBox, ShapePoint:
		return c.Width, c.Height
	case ShapeCircle:
		return c.Radius * 2, c.Radius * 2
	case ShapeLine:
		return math.Abs(c.P2.X - c.P1.X), math.Abs(c.P2.Y - c.P1.Y)
	case ShapePolygon:
		c.transformedPoints()
		return c.polyBounds.Width, c.polyBounds.Height
	case ShapeGrid:
		return c.Grid.Width(), c.Grid.Height()
	case ShapePixel:
		return float64(c.Mask.Width()), float64(c.Mask.Height())
	}
	return 0, 0
}

// anchor returns the owner's position, or (0, 0) for an orphaned collider.
func (c *Collider) anchor() (float64, float64) {
	if c.owner == nil {
		return 0, 0
	}
	return c.owner.Position()
}

// originAt returns the world-space point that local shape coordinates are
// relative to, with the owner anchored at (ax, ay).
func (c *Collider) originAt(ax, ay float64) (float64, float64) {
	return ax + c.X - c.OriginX, ay + c.Y - c.OriginY
}

// boundsAt returns the world-space bounding box with the owner anchored at
// (ax, ay).
func (c *Collider) boundsAt(ax, ay float64) Rect {
	ox, oy := c.originAt(ax, ay)
	lb := c.localBounds()
	return Rect{ox + lb.X, oy + lb.Y, lb.Width, lb.Height}
}

// Bounds returns the world-space bounding box at the owner's current position.
func (c *Collider) Bounds() Rect {
	return c.boundsAt(c.anchor())
}

// Left returns the world X of the bounding box's left edge.
func (c *Collider) Left() float64 { return c.Bounds().X }

// Top returns the world Y of the bounding box's top edge.
func (c *Collider) Top() float64 { return c.Bounds().Y }

// Right returns the world X of the bounding box's right edge.
func (c *Collider) Right() float64 { return c.Bounds().Right() }

// Bottom returns the world Y of the bounding box's bottom edge.
func (c *Collider) Bottom() float64 { return c.Bounds().Bottom() }

// CenterX returns the world X of the bounding box's center.
func (c *Collider) CenterX() float64 {
	b := c.Bounds()
	return b.X + b.Width/2
}

// CenterY returns the world Y of the bounding box's center.
func (c *Collider) CenterY() float64 {
	b := c.Bounds()
	return b.Y + b.Height/2
}

// --- World-space shape ---

// shape is a collider resolved to world space at a particular anchor. The
// overlap tests work on shapes so a grid tile can stand in as a box.
type shape struct {
	kind   ShapeKind
	bounds Rect
	center Vec2    // circle center
	radius float64 // circle radius
	point  Vec2    // point position
	line   Line
	poly   Polygon
	grid   *Grid
	mask   *PixelMask
}

// shapeAt resolves c to world space with the owner anchored at (ax, ay).
func (c *Collider) shapeAt(ax, ay float64) shape {
	ox, oy := c.originAt(ax, ay)
	s := shape{kind: c.Kind, bounds: c.boundsAt(ax, ay)}
	switch c.Kind {
	case ShapeCircle:
		s.center = Vec2{ox + c.Radius, oy + c.Radius}
		s.radius = c.Radius
	case ShapePoint:
		s.point = Vec2{ox, oy}
	case ShapeLine:
		s.line = Line{c.P1.Add(Vec2{ox, oy}), c.P2.Add(Vec2{ox, oy})}
	case ShapePolygon:
		s.poly = Polygon{Points: c.transformedPoints()}.Offset(ox, oy)
	case ShapeGrid:
		s.grid = c.Grid
	case ShapePixel:
		s.mask = c.Mask
	}
	return s
}

// boxShape returns a box shape covering r.
func boxShape(r Rect) shape {
	return shape{kind: ShapeBox, bounds: r}
}
