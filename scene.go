package bramble

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and its collision
// system. Nodes attached under Root are live: their colliders are registered
// and queryable.
type Scene struct {
	root       *Node
	collisions *CollisionSystem
	cameras    []*Camera
	debug      bool
}

// NewScene creates a new scene with a pre-created root node and a collision
// system using DefaultCollisionConfig.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultCollisionConfig())
}

// NewSceneWithConfig creates a new scene whose collision system uses cfg.
// Panics if cfg does not validate.
func NewSceneWithConfig(cfg CollisionConfig) *Scene {
	s := &Scene{collisions: NewCollisionSystem(cfg)}
	s.root = NewNode("root")
	s.root.scene = s
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Collisions returns the scene's collision system.
func (s *Scene) Collisions() *CollisionSystem {
	return s.collisions
}

// NewCamera creates a camera with the given screen viewport and adds it to
// the scene. Scene cameras are advanced at the end of every tick and used by
// DrawDebug.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := NewCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes cam from the scene. No-op if cam is not a scene camera.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's cameras in creation order. The returned slice
// must not be modified.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// Update runs one tick at Ebitengine's current TPS. See UpdateDelta.
func (s *Scene) Update() {
	s.UpdateDelta(1.0 / float64(ebiten.TPS()))
}

// UpdateDelta runs one tick of dt seconds. The collision index is rebuilt
// first, pruning colliders of disposed owners, then OnUpdate runs for every
// active node in tree order. Nodes move and query inside OnUpdate against the
// index built at the start of the tick. Cameras update last so they follow
// the positions OnUpdate produced.
func (s *Scene) UpdateDelta(dt float64) {
	var stats debugStats
	var t0 time.Time

	if s.debug {
		t0 = time.Now()
	}

	s.collisions.Update()

	if s.debug {
		stats.rebuildTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.nodeCount = updateNodes(s.root, dt)
	for _, cam := range s.cameras {
		cam.Update(float32(dt))
	}

	if s.debug {
		stats.updateTime = time.Since(t0)
		stats.collisions = s.collisions.Stats()
		s.debugLog(stats)
	}
}

// updateNodes calls OnUpdate on n and its active descendants and returns the
// number of nodes visited. Children added during the walk are visited in the
// same tick; a node removed during its parent's walk may be skipped.
func updateNodes(n *Node, dt float64) int {
	if !n.active || n.disposed {
		return 0
	}
	count := 1
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
	}
	for i := 0; i < len(n.children); i++ {
		count += updateNodes(n.children[i], dt)
	}
	return count
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, colliders
// indexed outside the world bounds are reported, and per-tick collision stats
// are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.collisions.SetDebug(enabled)
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
