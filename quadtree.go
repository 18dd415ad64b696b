package bramble

import "slices"

// Quadtree is a region tree mapping values to axis-aligned bounding quads.
// It answers "which stored quads overlap this region" without scanning every
// entry.
//
// Entries live in the deepest node whose region fully contains their quad.
// Entries that straddle a split line stay in the parent, so every value is
// stored exactly once and queries never see duplicates. A node splits when it
// holds more than maxEntries and is shallower than maxDepth.
//
// Quads are expected to fall inside the tree bounds. A quad outside the
// bounds is kept at the root and still found by overlapping queries, but the
// tree no longer accelerates lookups for it; treat it as a configuration
// error in the world bounds.
type Quadtree[T comparable] struct {
	bounds     Rect
	maxEntries int
	maxDepth   int
	root       *quadNode[T]
	index      map[T]Rect
	nodeCount  int
}

type quadEntry[T comparable] struct {
	value T
	quad  Rect
}

type quadNode[T comparable] struct {
	region   Rect
	depth    int
	entries  []quadEntry[T]
	children *[4]quadNode[T] // NW, NE, SW, SE; nil until split
}

// NewQuadtree creates an empty tree covering bounds.
// Panics if maxEntries < 1 or maxDepth < 0.
func NewQuadtree[T comparable](bounds Rect, maxEntries, maxDepth int) *Quadtree[T] {
	if maxEntries < 1 {
		panic("bramble: quadtree maxEntries must be at least 1")
	}
	if maxDepth < 0 {
		panic("bramble: quadtree maxDepth must not be negative")
	}
	q := &Quadtree[T]{
		bounds:     bounds,
		maxEntries: maxEntries,
		maxDepth:   maxDepth,
		index:      make(map[T]Rect),
	}
	q.Clear()
	return q
}

// Bounds returns the world region covered by the root node.
func (q *Quadtree[T]) Bounds() Rect {
	return q.bounds
}

// Len returns the number of stored values.
func (q *Quadtree[T]) Len() int {
	return len(q.index)
}

// NodeCount returns the number of nodes in the tree, including the root.
func (q *Quadtree[T]) NodeCount() int {
	return q.nodeCount
}

// Clear removes every entry and collapses the tree to a single root node.
func (q *Quadtree[T]) Clear() {
	q.root = &quadNode[T]{region: q.bounds}
	q.nodeCount = 1
	clear(q.index)
}

// HasValue reports whether v is stored.
func (q *Quadtree[T]) HasValue(v T) bool {
	_, ok := q.index[v]
	return ok
}

// Insert stores v with the given quad. Inserting a value that is already
// stored is a no-op. Zero-area quads are accepted; a query finds them only
// when they lie strictly inside its region, so a quad sitting exactly on a
// query edge is missed unless one side was padded with a margin.
func (q *Quadtree[T]) Insert(v T, quad Rect) {
	if _, ok := q.index[v]; ok {
		return
	}
	q.index[v] = quad
	q.insert(q.root, quadEntry[T]{value: v, quad: quad})
}

// Remove deletes v and reports whether it was stored. The remaining entries
// keep their order. Emptied nodes are not merged back into their parent.
func (q *Quadtree[T]) Remove(v T) bool {
	quad, ok := q.index[v]
	if !ok {
		return false
	}
	delete(q.index, v)
	// v sits on the path of nodes that fully contain its quad.
	for n := q.root; n != nil; n = n.childFor(quad) {
		if i := slices.IndexFunc(n.entries, func(e quadEntry[T]) bool { return e.value == v }); i >= 0 {
			n.entries = slices.Delete(n.entries, i, i+1)
			return true
		}
		if n.children == nil {
			break
		}
	}
	return true
}

func (q *Quadtree[T]) insert(n *quadNode[T], e quadEntry[T]) {
	for n.children != nil {
		child := n.childFor(e.quad)
		if child == nil {
			break
		}
		n = child
	}
	n.entries = append(n.entries, e)
	if n.children == nil && len(n.entries) > q.maxEntries && n.depth < q.maxDepth {
		q.split(n)
	}
}

// childFor returns the child whose region fully contains quad, or nil.
func (n *quadNode[T]) childFor(quad Rect) *quadNode[T] {
	for i := range n.children {
		if n.children[i].region.ContainsRect(quad) {
			return &n.children[i]
		}
	}
	return nil
}

// split divides n into four quadrants and pushes down every entry that fits
// entirely inside one of them.
func (q *Quadtree[T]) split(n *quadNode[T]) {
	r := n.region
	hw := r.Width / 2
	hh := r.Height / 2
	n.children = &[4]quadNode[T]{
		{region: Rect{r.X, r.Y, hw, hh}, depth: n.depth + 1},
		{region: Rect{r.X + hw, r.Y, r.Width - hw, hh}, depth: n.depth + 1},
		{region: Rect{r.X, r.Y + hh, hw, r.Height - hh}, depth: n.depth + 1},
		{region: Rect{r.X + hw, r.Y + hh, r.Width - hw, r.Height - hh}, depth: n.depth + 1},
	}
	q.nodeCount += 4

	kept := n.entries[:0]
	for _, e := range n.entries {
		if child := n.childFor(e.quad); child != nil {
			q.insert(child, e)
		} else {
			kept = append(kept, e)
		}
	}
	clear(n.entries[len(kept):])
	n.entries = kept
}

// Query appends to out every value whose quad overlaps region (touching
// edges do not count) and returns the extended slice. Values are visited
// root first, then children in NW, NE, SW, SE order, each node's entries in
// insertion order.
func (q *Quadtree[T]) Query(region Rect, out []T) []T {
	return q.query(q.root, region, out)
}

func (q *Quadtree[T]) query(n *quadNode[T], region Rect, out []T) []T {
	for i := range n.entries {
		if n.entries[i].quad.Overlaps(region) {
			out = append(out, n.entries[i].value)
		}
	}
	if n.children == nil {
		return out
	}
	for i := range n.children {
		child := &n.children[i]
		if child.region.Intersects(region) {
			out = q.query(child, region, out)
		}
	}
	return out
}

// QueryPoint appends to out every value whose quad contains (x, y), edges
// included, and returns the extended slice.
func (q *Quadtree[T]) QueryPoint(x, y float64, out []T) []T {
	return q.queryPoint(q.root, x, y, out)
}

func (q *Quadtree[T]) queryPoint(n *quadNode[T], x, y float64, out []T) []T {
	for i := range n.entries {
		if n.entries[i].quad.Contains(x, y) {
			out = append(out, n.entries[i].value)
		}
	}
	if n.children == nil {
		return out
	}
	// A point on a split line can touch quads stored on both sides.
	for i := range n.children {
		if n.children[i].region.Contains(x, y) {
			out = q.queryPoint(&n.children[i], x, y, out)
		}
	}
	return out
}

// Each calls fn for every stored value and quad, in Query order.
func (q *Quadtree[T]) Each(fn func(v T, quad Rect)) {
	var walk func(n *quadNode[T])
	walk = func(n *quadNode[T]) {
		for _, e := range n.entries {
			fn(e.value, e.quad)
		}
		if n.children != nil {
			for i := range n.children {
				walk(&n.children[i])
			}
		}
	}
	walk(q.root)
}
