package bramble

import "math"

// Line is a line segment between two points in world space.
type Line struct {
	A, B Vec2
}

// Bounds returns the axis-aligned bounding box of the segment. Horizontal and
// vertical segments have zero height or width.
func (l Line) Bounds() Rect {
	x0, x1 := math.Min(l.A.X, l.B.X), math.Max(l.A.X, l.B.X)
	y0, y1 := math.Min(l.A.Y, l.B.Y), math.Max(l.A.Y, l.B.Y)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Len returns the length of the segment.
func (l Line) Len() float64 {
	return l.B.Sub(l.A).Len()
}

// ClosestPoint returns the point on the segment nearest to p.
func (l Line) ClosestPoint(p Vec2) Vec2 {
	d := l.B.Sub(l.A)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return l.A
	}
	t := p.Sub(l.A).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return l.A.Add(d.Scale(t))
}

// DistanceToPoint returns the shortest distance from p to the segment.
func (l Line) DistanceToPoint(p Vec2) float64 {
	return p.Sub(l.ClosestPoint(p)).Len()
}

// orientation returns the sign of the turn a -> b -> c: 1 counter-clockwise
// in screen space terms of the cross product, -1 the other way, 0 collinear.
func orientation(a, b, c Vec2) int {
	v := b.Sub(a).Cross(c.Sub(a))
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known to be collinear with l, lies within its
// extent.
func (l Line) onSegment(p Vec2) bool {
	return p.X >= math.Min(l.A.X, l.B.X) && p.X <= math.Max(l.A.X, l.B.X) &&
		p.Y >= math.Min(l.A.Y, l.B.Y) && p.Y <= math.Max(l.A.Y, l.B.Y)
}

// Intersects reports whether the two segments share at least one point.
// Collinear overlapping segments and touching endpoints count.
func (l Line) Intersects(o Line) bool {
	o1 := orientation(l.A, l.B, o.A)
	o2 := orientation(l.A, l.B, o.B)
	o3 := orientation(o.A, o.B, l.A)
	o4 := orientation(o.A, o.B, l.B)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == 0 && l.onSegment(o.A):
		return true
	case o2 == 0 && l.onSegment(o.B):
		return true
	case o3 == 0 && o.onSegment(l.A):
		return true
	case o4 == 0 && o.onSegment(l.B):
		return true
	}
	return false
}

// ContainsPoint reports whether p lies exactly on the segment. Vertical and
// horizontal segments are handled explicitly so no slope is divided by zero.
func (l Line) ContainsPoint(p Vec2) bool {
	if !l.onSegment(p) {
		return false
	}
	dx := l.B.X - l.A.X
	dy := l.B.Y - l.A.Y
	switch {
	case dx == 0 && dy == 0:
		return p == l.A
	case dx == 0:
		return p.X == l.A.X
	case dy == 0:
		return p.Y == l.A.Y
	}
	// Equal slopes from A to p and from A to B, cross-multiplied.
	return (p.Y-l.A.Y)*dx == dy*(p.X-l.A.X)
}

// IntersectsRect reports whether the segment passes through the interior of
// r. A segment that only runs along an edge of r does not count, matching
// the strict box overlap rule.
func (l Line) IntersectsRect(r Rect) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	// Liang-Barsky clipping against the open rectangle.
	t0, t1 := 0.0, 1.0
	dx := l.B.X - l.A.X
	dy := l.B.Y - l.A.Y
	clip := func(p, q float64) bool {
		if p == 0 {
			return q > 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}
	if !clip(-dx, l.A.X-r.X) || !clip(dx, r.X+r.Width-l.A.X) ||
		!clip(-dy, l.A.Y-r.Y) || !clip(dy, r.Y+r.Height-l.A.Y) {
		return false
	}
	if t0 > t1 {
		return false
	}
	// The clipped span may still lie on the boundary; test its midpoint.
	t := (t0 + t1) / 2
	mx := l.A.X + dx*t
	my := l.A.Y + dy*t
	return mx > r.X && mx < r.X+r.Width && my > r.Y && my < r.Y+r.Height
}

// IntersectsCircle reports whether any point of the segment lies strictly
// closer than radius to center.
func (l Line) IntersectsCircle(center Vec2, radius float64) bool {
	return l.DistanceToPoint(center) < radius
}
