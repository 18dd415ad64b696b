package bramble

import (
	"fmt"
	"math"
)

// pairTest decides overlap for two world-space shapes already ordered so
// that a.kind <= b.kind.
type pairTest func(a, b shape) bool

// overlapTable holds one test per unordered pair of shape kinds, indexed
// [low kind][high kind]. It is filled and checked for completeness in init,
// so adding a ShapeKind without its pair tests fails at program start rather
// than silently reporting no overlap.
var overlapTable [numShapeKinds][numShapeKinds]pairTest

func init() {
	t := &overlapTable

	t[ShapeBox][ShapeBox] = boxBox
	t[ShapeBox][ShapeCircle] = boxCircle
	t[ShapeBox][ShapePoint] = boxPoint
	t[ShapeBox][ShapeLine] = boxLine
	t[ShapeBox][ShapePolygon] = boxPolygon
	t[ShapeBox][ShapeGrid] = anyGrid
	t[ShapeBox][ShapePixel] = anyPixel

	t[ShapeCircle][ShapeCircle] = circleCircle
	t[ShapeCircle][ShapePoint] = circlePoint
	t[ShapeCircle][ShapeLine] = circleLine
	t[ShapeCircle][ShapePolygon] = circlePolygon
	t[ShapeCircle][ShapeGrid] = anyGrid
	t[ShapeCircle][ShapePixel] = anyPixel

	t[ShapePoint][ShapePoint] = pointPoint
	t[ShapePoint][ShapeLine] = pointLine
	t[ShapePoint][ShapePolygon] = pointPolygon
	t[ShapePoint][ShapeGrid] = anyGrid
	t[ShapePoint][ShapePixel] = anyPixel

	t[ShapeLine][ShapeLine] = lineLine
	t[ShapeLine][ShapePolygon] = linePolygon
	t[ShapeLine][ShapeGrid] = anyGrid
	t[ShapeLine][ShapePixel] = anyPixel

	t[ShapePolygon][ShapePolygon] = polygonPolygon
	t[ShapePolygon][ShapeGrid] = anyGrid
	t[ShapePolygon][ShapePixel] = anyPixel

	t[ShapeGrid][ShapeGrid] = anyGrid
	t[ShapeGrid][ShapePixel] = anyPixel

	t[ShapePixel][ShapePixel] = anyPixel

	for i := ShapeKind(0); i < numShapeKinds; i++ {
		for j := i; j < numShapeKinds; j++ {
			if t[i][j] == nil {
				panic(fmt.Sprintf("bramble: no overlap test for %s/%s", i, j))
			}
		}
	}
}

// OverlapTest reports whether a and b intersect at their owners' current
// positions. The result does not depend on argument order. Registration,
// tags, and collidable flags are not consulted.
func OverlapTest(a, b *Collider) bool {
	ax, ay := a.anchor()
	bx, by := b.anchor()
	return overlapShapes(a.shapeAt(ax, ay), b.shapeAt(bx, by))
}

// overlapShapes normalizes argument order and runs the pair test.
func overlapShapes(a, b shape) bool {
	if a.kind > b.kind {
		a, b = b, a
	}
	return overlapTable[a.kind][b.kind](a, b)
}

// --- Box ---

// boxBox is a separating-axis test on the four edges. Touching edges do not
// overlap.
func boxBox(a, b shape) bool {
	return a.bounds.Overlaps(b.bounds)
}

// boxCircle: the center is inside the box, or a box edge (corners included)
// passes closer than the radius.
func boxCircle(a, b shape) bool {
	r := a.bounds
	c := b.center
	if c.X > r.X && c.X < r.Right() && c.Y > r.Y && c.Y < r.Bottom() {
		return true
	}
	tl := Vec2{r.X, r.Y}
	tr := Vec2{r.Right(), r.Y}
	br := Vec2{r.Right(), r.Bottom()}
	bl := Vec2{r.X, r.Bottom()}
	return Line{tl, tr}.IntersectsCircle(c, b.radius) ||
		Line{tr, br}.IntersectsCircle(c, b.radius) ||
		Line{br, bl}.IntersectsCircle(c, b.radius) ||
		Line{bl, tl}.IntersectsCircle(c, b.radius)
}

// boxPoint: the point lies in the half-open box [Left, Right) x [Top, Bottom).
func boxPoint(a, b shape) bool {
	return pointInRect(b.point, a.bounds)
}

func pointInRect(p Vec2, r Rect) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func boxLine(a, b shape) bool {
	return b.line.IntersectsRect(a.bounds)
}

func boxPolygon(a, b shape) bool {
	return RectPolygon(a.bounds).Overlaps(b.poly)
}

// --- Circle ---

// circleCircle: center distance strictly less than the sum of the radii.
func circleCircle(a, b shape) bool {
	d := a.center.Sub(b.center)
	rr := a.radius + b.radius
	return d.Dot(d) < rr*rr
}

func circlePoint(a, b shape) bool {
	d := a.center.Sub(b.point)
	return d.Dot(d) < a.radius*a.radius
}

func circleLine(a, b shape) bool {
	return b.line.IntersectsCircle(a.center, a.radius)
}

func circlePolygon(a, b shape) bool {
	return b.poly.OverlapsCircle(a.center, a.radius)
}

// --- Point ---

// pointPoint compares coordinates exactly. There is no tolerance.
func pointPoint(a, b shape) bool {
	return a.point == b.point
}

func pointLine(a, b shape) bool {
	return b.line.ContainsPoint(a.point)
}

func pointPolygon(a, b shape) bool {
	return b.poly.Contains(a.point.X, a.point.Y)
}

// --- Line ---

func lineLine(a, b shape) bool {
	return a.line.Intersects(b.line)
}

func linePolygon(a, b shape) bool {
	return Polygon{Points: []Vec2{a.line.A, a.line.B}}.Overlaps(b.poly)
}

// --- Polygon ---

func polygonPolygon(a, b shape) bool {
	return a.poly.Overlaps(b.poly)
}

// --- Grid ---

// anyGrid tests a grid against any shape of equal or lower kind (b is the
// grid) or against another grid. The grid's coarse pre-filter runs first;
// only then is every solid tile under the shape's bounding box tested as a
// box with the shape's own pair test.
func anyGrid(a, b shape) bool {
	g, other := b, a
	if g.kind != ShapeGrid {
		g, other = a, b
	}
	ox, oy := g.bounds.X, g.bounds.Y
	if !g.grid.RectSolid(ox, oy, other.bounds) {
		return false
	}
	return g.grid.eachSolidTile(ox, oy, other.bounds, func(tile Rect) bool {
		return overlapShapes(boxShape(tile), other)
	})
}

// --- Pixel ---

// anyPixel walks every integer pixel in the intersection of the two bounding
// boxes and reports whether any pixel is solid in both shapes. This is the
// only test whose cost grows with area rather than shape complexity; two
// large pixel colliders can be expensive.
func anyPixel(a, b shape) bool {
	p, other := b, a
	if p.kind != ShapePixel {
		p, other = a, b
	}
	region := p.bounds.Intersection(other.bounds)
	if region.Width < 0 || region.Height < 0 {
		return false
	}
	x0 := int(math.Floor(region.X))
	y0 := int(math.Floor(region.Y))
	x1 := max(int(math.Ceil(region.Right())), x0+1)
	y1 := max(int(math.Ceil(region.Bottom())), y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			if !p.mask.SolidAt(p.bounds.X, p.bounds.Y, cx, cy) {
				continue
			}
			if solidInCell(other, x, y) {
				return true
			}
		}
	}
	return false
}

// solidInCell reports whether s occupies the unit cell at integer pixel
// (x, y): mask alpha or tile occupancy at the cell center, or geometric
// overlap for the other kinds.
func solidInCell(s shape, x, y int) bool {
	cx, cy := float64(x)+0.5, float64(y)+0.5
	switch s.kind {
	case ShapePixel:
		return s.mask.SolidAt(s.bounds.X, s.bounds.Y, cx, cy)
	case ShapeGrid:
		return s.grid.PointSolid(s.bounds.X, s.bounds.Y, cx, cy)
	}
	return overlapShapes(boxShape(Rect{float64(x), float64(y), 1, 1}), s)
}
