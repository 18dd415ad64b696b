package bramble

import "slices"

// Filter selects which registered colliders a query may report. At most one
// criterion applies, checked in field order: a non-nil Collider restricts the
// query to that collider, a non-empty Owners list restricts it to colliders
// of those owners, and otherwise Tags selects colliders carrying at least one
// of the tags. An empty Filter matches every tag the system has ever seen, so
// untagged colliders are only reachable through Collider or Owners.
type Filter struct {
	Tags     []Tag
	Collider *Collider
	Owners   []Owner
}

// --- Queries ---
//
// Every query takes the position (x, y) the owner is hypothetically moved to
// and tests the collider there. The owner itself is never written to. A
// collider without an owner, or whose owner is not in a live scene, finds
// nothing.

// Overlap reports whether c, with its owner at (x, y), overlaps any collider
// carrying one of tags. No tags means every known tag.
func (c *Collider) Overlap(x, y float64, tags ...Tag) bool {
	return c.CollideWith(x, y, Filter{Tags: tags}) != nil
}

// OverlapCollider reports whether c, with its owner at (x, y), overlaps
// other. The other collider must be registered, collidable, and belong to a
// different active owner.
func (c *Collider) OverlapCollider(x, y float64, other *Collider) bool {
	if other == nil {
		return false
	}
	return c.CollideWith(x, y, Filter{Collider: other}) != nil
}

// OverlapOwner reports whether c, with its owner at (x, y), overlaps any
// collider of o.
func (c *Collider) OverlapOwner(x, y float64, o Owner) bool {
	if o == nil {
		return false
	}
	return c.CollideWith(x, y, Filter{Owners: []Owner{o}}) != nil
}

// OverlapOwners reports whether c, with its owner at (x, y), overlaps any
// collider of any of owners.
func (c *Collider) OverlapOwners(x, y float64, owners ...Owner) bool {
	if len(owners) == 0 {
		return false
	}
	return c.CollideWith(x, y, Filter{Owners: owners}) != nil
}

// Collide returns the first collider carrying one of tags that c overlaps
// with its owner at (x, y), or nil. No tags means every known tag. "First"
// is the broad-phase candidate order, which is deterministic for a given
// registration order but not nearest-first.
func (c *Collider) Collide(x, y float64, tags ...Tag) *Collider {
	return c.CollideWith(x, y, Filter{Tags: tags})
}

// CollideWith returns the first collider matching f that c overlaps with its
// owner at (x, y), or nil.
func (c *Collider) CollideWith(x, y float64, f Filter) *Collider {
	var hit *Collider
	c.Query(x, y, f, func(other *Collider) bool {
		hit = other
		return false
	})
	return hit
}

// CollideList returns every collider carrying one of tags that c overlaps
// with its owner at (x, y), in candidate order. No tags means every known
// tag. Returns nil when nothing overlaps.
func (c *Collider) CollideList(x, y float64, tags ...Tag) []*Collider {
	var hits []*Collider
	c.Query(x, y, Filter{Tags: tags}, func(other *Collider) bool {
		hits = append(hits, other)
		return true
	})
	return hits
}

// CollideOwners returns the owners of every collider carrying one of tags
// that c overlaps with its owner at (x, y). Each owner appears once, in the
// order its first overlapping collider was found.
func (c *Collider) CollideOwners(x, y float64, tags ...Tag) []Owner {
	var owners []Owner
	c.Query(x, y, Filter{Tags: tags}, func(other *Collider) bool {
		if !slices.Contains(owners, other.owner) {
			owners = append(owners, other.owner)
		}
		return true
	})
	return owners
}

// Query calls fn for every collider matching f that c overlaps with its
// owner at (x, y), in candidate order, until fn returns false.
//
// Candidates are gathered before fn is first called. Colliders registered
// from inside fn are not visited by this query; colliders unregistered from
// inside fn are skipped if not yet visited.
func (c *Collider) Query(x, y float64, f Filter, fn func(other *Collider) bool) {
	if c.owner == nil {
		return
	}
	s := c.owner.Collisions()
	if s == nil {
		return
	}
	s.query(c, x, y, f, fn)
}

// query runs the broad phase around c's shape at anchor (x, y), then the
// candidate filter and narrow phase.
func (s *CollisionSystem) query(c *Collider, x, y float64, f Filter, fn func(*Collider) bool) {
	self := c.shapeAt(x, y)
	tags := f.Tags
	if len(tags) == 0 {
		tags = s.knownTags
	}

	cands := s.takeBuf()
	defer func() { s.putBuf(cands) }()
	if f.Collider != nil {
		cands = append(cands, f.Collider)
	} else {
		cands = s.FindCollisions(self.bounds, cands)
	}
	s.stats.Queries++
	s.stats.Candidates += len(cands)

	for _, other := range cands {
		if !s.accepts(c, other, f, tags) {
			continue
		}
		if !overlapShapes(self, other.shapeAt(other.anchor())) {
			continue
		}
		if !fn(other) {
			return
		}
	}
}

// accepts applies every non-geometric condition a candidate must meet to be
// reported to c.
func (s *CollisionSystem) accepts(c, other *Collider, f Filter, tags []Tag) bool {
	if other == c || !s.reportable(other) || other.owner == c.owner {
		return false
	}
	switch {
	case f.Collider != nil:
		return other == f.Collider
	case len(f.Owners) > 0:
		return slices.Contains(f.Owners, other.owner)
	}
	return other.HasAnyTag(tags)
}

// reportable reports whether other is registered here, collidable, and owned
// by an active, collidable owner that is still attached to s.
func (s *CollisionSystem) reportable(other *Collider) bool {
	if other.system != s || !other.Collidable {
		return false
	}
	o := other.owner
	if o == nil || o.Collisions() != s {
		return false
	}
	return o.Active() && o.Collidable()
}

// --- Point picking ---

// CollidePoint returns every collider carrying one of tags that contains the
// world point (x, y), in candidate order. No tags means every known tag.
// There is no querying owner, so nothing is excluded for sharing one.
// Returns nil when nothing is hit.
func (s *CollisionSystem) CollidePoint(x, y float64, tags ...Tag) []*Collider {
	if len(tags) == 0 {
		tags = s.knownTags
	}
	probe := shape{kind: ShapePoint, point: Vec2{x, y}, bounds: Rect{x, y, 1, 1}}

	cands := s.takeBuf()
	defer func() { s.putBuf(cands) }()
	cands = s.FindCollisions(probe.bounds, cands)
	s.stats.Queries++
	s.stats.Candidates += len(cands)

	var hits []*Collider
	for _, other := range cands {
		if !s.reportable(other) || !other.HasAnyTag(tags) {
			continue
		}
		if overlapShapes(probe, other.shapeAt(other.anchor())) {
			hits = append(hits, other)
		}
	}
	return hits
}
