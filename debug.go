package bramble

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugStats holds per-tick timing and collision metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	rebuildTime time.Duration
	updateTime  time.Duration
	nodeCount   int
	collisions  CollisionStats
}

// debugLog prints timing and collision stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	c := stats.collisions
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] rebuild: %v | update: %v | total: %v | nodes updated: %d\n",
		stats.rebuildTime, stats.updateTime, stats.rebuildTime+stats.updateTime, stats.nodeCount)
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] colliders: %d | pruned: %d | quadtree nodes: %d | queries: %d | candidates: %d\n",
		c.Colliders, c.Pruned, c.Nodes, c.Queries, c.Candidates)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bramble debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// --- Overlay ---

// DrawDebug outlines registered colliders on dst. With no cameras the
// overlay is drawn in world coordinates; otherwise each camera draws the
// colliders it can see into its own viewport. Colliders that queries would
// skip (inactive or non-collidable owner, or a non-collidable collider) are
// drawn in ColorDebugInactive.
func (s *Scene) DrawDebug(dst *ebiten.Image) {
	if len(s.cameras) == 0 {
		for _, c := range s.collisions.Colliders() {
			c.debugDraw(dst, identityTransform)
		}
		return
	}
	for _, cam := range s.cameras {
		s.DrawDebugCamera(dst, cam)
	}
}

// DrawDebugCamera outlines the colliders visible to cam, clipped to its
// viewport. Visibility is decided by the broad phase, so a collider that has
// moved since the last Update may be missed near the edges.
func (s *Scene) DrawDebugCamera(dst *ebiten.Image, cam *Camera) {
	vp := cam.Viewport
	sub, ok := dst.SubImage(image.Rect(int(vp.X), int(vp.Y), int(vp.Right()), int(vp.Bottom()))).(*ebiten.Image)
	if !ok {
		return
	}
	view := cam.computeViewMatrix()
	buf := s.collisions.takeBuf()
	buf = s.collisions.FindCollisions(cam.VisibleBounds(), buf)
	for _, c := range buf {
		c.debugDraw(sub, view)
	}
	s.collisions.putBuf(buf)
}

func (c *Collider) debugDraw(dst *ebiten.Image, view [6]float64) {
	if !live(c.owner) {
		return
	}
	clr := ColorDebugCollider
	if !c.Collidable || !c.owner.Active() || !c.owner.Collidable() {
		clr = ColorDebugInactive
	}
	c.debugRender(dst, clr.toRGBA(), view)
}

// DebugRender outlines the collider on dst at its owner's current position.
// It only reads collision state. Grids outline each solid tile; pixel masks
// outline their bounds.
func (c *Collider) DebugRender(dst *ebiten.Image, clr Color) {
	c.debugRender(dst, clr.toRGBA(), identityTransform)
}

func (c *Collider) debugRender(dst *ebiten.Image, col color.RGBA, view [6]float64) {
	s := c.shapeAt(c.anchor())
	switch s.kind {
	case ShapeCircle:
		cx, cy := transformPoint(view, s.center.X, s.center.Y)
		r := s.radius * math.Hypot(view[0], view[1])
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), 1, col, true)
	case ShapeLine:
		strokeLine(dst, view, s.line, col)
	case ShapePolygon:
		pts := s.poly.Points
		for i := range pts {
			strokeLine(dst, view, Line{pts[i], pts[(i+1)%len(pts)]}, col)
		}
	case ShapeGrid:
		s.grid.eachSolidTile(s.bounds.X, s.bounds.Y, s.bounds, func(tile Rect) bool {
			strokeRect(dst, view, tile, col)
			return false
		})
	default:
		strokeRect(dst, view, s.bounds, col)
	}
}

func strokeLine(dst *ebiten.Image, view [6]float64, l Line, col color.Color) {
	ax, ay := transformPoint(view, l.A.X, l.A.Y)
	bx, by := transformPoint(view, l.B.X, l.B.Y)
	vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), 1, col, true)
}

func strokeRect(dst *ebiten.Image, view [6]float64, r Rect, col color.Color) {
	if view == identityTransform {
		vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, col, false)
		return
	}
	tl, tr := Vec2{r.X, r.Y}, Vec2{r.Right(), r.Y}
	br, bl := Vec2{r.Right(), r.Bottom()}, Vec2{r.X, r.Bottom()}
	strokeLine(dst, view, Line{tl, tr}, col)
	strokeLine(dst, view, Line{tr, br}, col)
	strokeLine(dst, view, Line{br, bl}, col)
	strokeLine(dst, view, Line{bl, tl}, col)
}

// toRGBA converts a bramble Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
