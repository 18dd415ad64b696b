package bramble

import (
	"log"
	"slices"
	"time"
)

// CollisionSystem is the registry of live colliders for one scene. It
// rebuilds its quadtree once per tick in Update and answers the queries
// colliders issue through their owners.
//
// A CollisionSystem is not safe for concurrent use. Registration, Update, and
// queries are expected to run on the game loop goroutine.
type CollisionSystem struct {
	config CollisionConfig
	tree   *Quadtree[*Collider]

	// Registered colliders in registration order, with their slice index.
	colliders []*Collider
	index     map[*Collider]int

	// Every tag ever seen on a registered collider, in first-seen order.
	// Tags are never removed from this set.
	knownTags []Tag
	knownSet  map[Tag]struct{}

	// Candidate buffers, reused across queries. A stack rather than a single
	// buffer so a query issued from inside a Query callback gets its own.
	bufs [][]*Collider

	stats CollisionStats
	debug bool
}

// CollisionStats describes the most recent Update and the queries issued
// since.
type CollisionStats struct {
	Colliders   int           // registered colliders after pruning
	Pruned      int           // colliders dropped because their owner was gone
	Indexed     int           // colliders in the quadtree
	Nodes       int           // quadtree nodes
	RebuildTime time.Duration // time spent pruning and rebuilding
	Queries     int           // queries since the last Update
	Candidates  int           // broad-phase candidates examined since the last Update
}

// NewCollisionSystem creates an empty collision system.
// Panics if cfg does not validate.
func NewCollisionSystem(cfg CollisionConfig) *CollisionSystem {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return &CollisionSystem{
		config:   cfg,
		tree:     NewQuadtree[*Collider](cfg.WorldBounds(), cfg.MaxEntries, cfg.MaxDepth),
		index:    make(map[*Collider]int),
		knownSet: make(map[Tag]struct{}),
	}
}

// Config returns the configuration the system was built with.
func (s *CollisionSystem) Config() CollisionConfig {
	return s.config
}

// SetDebug enables warnings for colliders indexed outside the world bounds.
func (s *CollisionSystem) SetDebug(enabled bool) {
	s.debug = enabled
}

// Stats returns counters for the last Update and the queries since.
func (s *CollisionSystem) Stats() CollisionStats {
	return s.stats
}

// --- Registration ---

// Register adds c to the live set and merges its tags into the known tags.
// Registering a collider twice is a no-op. A collider registered with another
// system is moved to this one. If the collider's owner is live it is indexed
// immediately, so it can be found before the next Update.
func (s *CollisionSystem) Register(c *Collider) {
	if c.system == s {
		return
	}
	if c.system != nil {
		c.system.Unregister(c)
	}
	s.index[c] = len(s.colliders)
	s.colliders = append(s.colliders, c)
	c.system = s
	s.addKnownTags(c.tags)

	if c.owner != nil && c.owner.Collisions() == s && !s.tree.HasValue(c) {
		s.insert(c)
	}
}

// Unregister removes c from the live set and the quadtree, so registering it
// again indexes it at its bounds at that time. Unregistering a collider that
// is not registered is a no-op. Its tags stay in the known tags.
func (s *CollisionSystem) Unregister(c *Collider) {
	i, ok := s.index[c]
	if !ok {
		return
	}
	s.colliders = slices.Delete(s.colliders, i, i+1)
	delete(s.index, c)
	s.tree.Remove(c)
	for j := i; j < len(s.colliders); j++ {
		s.index[s.colliders[j]] = j
	}
	c.system = nil
}

// IsRegistered reports whether c is in the live set.
func (s *CollisionSystem) IsRegistered(c *Collider) bool {
	_, ok := s.index[c]
	return ok
}

// Colliders returns the live set in registration order. The returned slice
// MUST NOT be mutated by the caller.
func (s *CollisionSystem) Colliders() []*Collider {
	return s.colliders
}

// Len returns the number of registered colliders.
func (s *CollisionSystem) Len() int {
	return len(s.colliders)
}

// KnownTags returns every tag seen on a registered collider, in first-seen
// order. Queries with no tags match against this set. Tags accumulate: they
// remain known after every collider carrying them is unregistered.
func (s *CollisionSystem) KnownTags() []Tag {
	return s.knownTags
}

func (s *CollisionSystem) addKnownTags(tags []Tag) {
	for _, t := range tags {
		if _, ok := s.knownSet[t]; ok {
			continue
		}
		s.knownSet[t] = struct{}{}
		s.knownTags = append(s.knownTags, t)
	}
}

// --- Tick ---

// Update prunes colliders whose owner is gone or no longer belongs to this
// system, then rebuilds the quadtree from the remaining colliders at their
// owners' current positions. Call it once per tick, before colliders move
// and query. Pruning here is the only way orphaned colliders leave the live
// set.
func (s *CollisionSystem) Update() {
	start := time.Now()
	pruned := 0
	kept := s.colliders[:0]
	for _, c := range s.colliders {
		if c.owner == nil || c.owner.Collisions() != s {
			delete(s.index, c)
			c.system = nil
			pruned++
			continue
		}
		s.index[c] = len(kept)
		kept = append(kept, c)
	}
	clear(s.colliders[len(kept):])
	s.colliders = kept

	s.tree.Clear()
	for _, c := range s.colliders {
		if !s.tree.HasValue(c) {
			s.insert(c)
		}
	}

	s.stats = CollisionStats{
		Colliders:   len(s.colliders),
		Pruned:      pruned,
		Indexed:     s.tree.Len(),
		Nodes:       s.tree.NodeCount(),
		RebuildTime: time.Since(start),
	}
}

// insert indexes c at its current bounds padded by the margin.
func (s *CollisionSystem) insert(c *Collider) {
	quad := c.Bounds().Expand(s.config.Margin)
	if s.debug && !s.tree.Bounds().ContainsRect(quad) {
		log.Printf("bramble: collider %v lies outside world bounds %v", c, s.tree.Bounds())
	}
	s.tree.Insert(c, quad)
}

// FindCollisions appends to out every indexed collider whose padded bounds
// overlap region padded by the margin. This is the broad phase only: no
// filtering or narrow-phase test is applied.
func (s *CollisionSystem) FindCollisions(region Rect, out []*Collider) []*Collider {
	return s.tree.Query(region.Expand(s.config.Margin), out)
}

func (s *CollisionSystem) takeBuf() []*Collider {
	if n := len(s.bufs); n > 0 {
		buf := s.bufs[n-1]
		s.bufs = s.bufs[:n-1]
		return buf[:0]
	}
	return make([]*Collider, 0, 32)
}

func (s *CollisionSystem) putBuf(buf []*Collider) {
	clear(buf)
	s.bufs = append(s.bufs, buf[:0])
}
