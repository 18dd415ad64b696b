package bramble

import "math"

// Polygon is a convex polygon in world space. Points may be in either
// winding order. One- and two-point polygons are treated as a point and a
// segment respectively, which lets the overlap tests convert every shape to
// a polygon when needed.
type Polygon struct {
	Points []Vec2
}

// RectPolygon returns the four corners of r as a polygon.
func RectPolygon(r Rect) Polygon {
	return Polygon{Points: []Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}}
}

// Bounds returns the axis-aligned bounding box of the points.
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, v := range p.Points[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Offset returns a copy of p translated by (dx, dy).
func (p Polygon) Offset(dx, dy float64) Polygon {
	pts := make([]Vec2, len(p.Points))
	for i, v := range p.Points {
		pts[i] = Vec2{v.X + dx, v.Y + dy}
	}
	return Polygon{Points: pts}
}

// Contains reports whether (x, y) lies strictly inside the polygon, using
// the cross-product sign test. Points on an edge are outside.
func (p Polygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		} else {
			return false
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// axes appends the edge normals of p to buf. Degenerate edges are skipped.
func (p Polygon) axes(buf []Vec2) []Vec2 {
	n := len(p.Points)
	if n < 2 {
		return buf
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	for i := 0; i < edges; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		e := b.Sub(a)
		if e.X == 0 && e.Y == 0 {
			continue
		}
		buf = append(buf, Vec2{-e.Y, e.X})
	}
	// A segment also needs its own direction as an axis.
	if n == 2 {
		e := p.Points[1].Sub(p.Points[0])
		if e.X != 0 || e.Y != 0 {
			buf = append(buf, e)
		}
	}
	return buf
}

// project returns the min and max of the dot products of every point with axis.
func (p Polygon) project(axis Vec2) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range p.Points {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Overlaps reports whether p and o share interior area (or, for degenerate
// polygons, whether a point or segment passes through the other's interior)
// using the separating axis theorem. Touching along an edge is not an
// overlap.
func (p Polygon) Overlaps(o Polygon) bool {
	if len(p.Points) == 0 || len(o.Points) == 0 {
		return false
	}
	var buf [16]Vec2
	axes := p.axes(buf[:0])
	axes = o.axes(axes)
	if len(axes) == 0 {
		// Two single points.
		return len(p.Points) == 1 && len(o.Points) == 1 && p.Points[0] == o.Points[0]
	}
	for _, axis := range axes {
		aLo, aHi := p.project(axis)
		bLo, bHi := o.project(axis)
		if aHi <= bLo || bHi <= aLo {
			return false
		}
	}
	return true
}

// OverlapsCircle reports whether the polygon and the circle share interior
// area: the center is inside the polygon, or an edge passes closer than the
// radius to the center.
func (p Polygon) OverlapsCircle(center Vec2, radius float64) bool {
	n := len(p.Points)
	switch n {
	case 0:
		return false
	case 1:
		return p.Points[0].Sub(center).Len() < radius
	}
	if p.Contains(center.X, center.Y) {
		return true
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	for i := 0; i < edges; i++ {
		l := Line{p.Points[i], p.Points[(i+1)%n]}
		if l.IntersectsCircle(center, radius) {
			return true
		}
	}
	return false
}
