package bramble

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.BoundsEnabled {
		t.Error("BoundsEnabled = true, want false")
	}
	if cam.Viewport.Width != 800 || cam.Viewport.Height != 600 {
		t.Errorf("Viewport = %v, want 800x600", cam.Viewport)
	}
}

// --- View matrix ---

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	cam.MarkDirty()
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	cam.MarkDirty()

	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Rotation = math.Pi / 2
	cam.MarkDirty()

	// Rotate(-pi/2) maps (1,0) to (0,-1) before centering on the viewport.
	sx, sy := cam.WorldToScreen(1, 0)
	if !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 299, 1e-9) {
		t.Errorf("90 deg rotation: WorldToScreen(1,0) = (%f,%f), want (400,299)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.Rotation = 0.3
	cam.MarkDirty()

	sx, sy := cam.WorldToScreen(123, -456)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 123, 1e-6) || !approxEqual(wy, -456, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (123,-456)", wx, wy)
	}
}

func TestInvertAffineSingular(t *testing.T) {
	if got := invertAffine([6]float64{0, 0, 0, 0, 5, 5}); got != identityTransform {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 400
	cam.Y = 300
	cam.MarkDirty()
	b := cam.VisibleBounds()
	if !approxEqual(b.X, 0, 1e-6) || !approxEqual(b.Y, 0, 1e-6) ||
		!approxEqual(b.Width, 800, 1e-6) || !approxEqual(b.Height, 600, 1e-6) {
		t.Errorf("VisibleBounds at zoom 1 = %v, want (0,0 800x600)", b)
	}

	cam.Zoom = 2.0
	cam.MarkDirty()
	b = cam.VisibleBounds()
	if !approxEqual(b.Width, 400, 1e-6) || !approxEqual(b.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds at zoom 2 size = (%f,%f), want (400,300)", b.Width, b.Height)
	}
}

// --- Follow and scroll ---

func TestCameraFollowNode(t *testing.T) {
	scene := NewScene()
	parent := NewNode("parent")
	parent.SetPosition(150, 100)
	target := NewNode("target")
	target.SetPosition(50, 50)
	parent.AddChild(target)
	scene.Root().AddChild(parent)

	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Follow(target, 0, 0, 1.0)
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 200, epsilon) || !approxEqual(cam.Y, 150, epsilon) {
		t.Errorf("after follow snap: cam = (%f,%f), want (200,150)", cam.X, cam.Y)
	}
}

func TestCameraFollowLerpAndOffset(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	target := spawn(newTestSystem(), 100, 0, NewPoint())

	cam.Follow(target, 0, 0, 0.5)
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 50, epsilon) {
		t.Errorf("after lerp 0.5: cam.X = %f, want 50", cam.X)
	}

	cam.Follow(target, 10, -20, 1.0)
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 110, epsilon) || !approxEqual(cam.Y, -20, epsilon) {
		t.Errorf("follow with offset: cam = (%f,%f), want (110,-20)", cam.X, cam.Y)
	}
}

func TestCameraFollowPausesWhileDetached(t *testing.T) {
	target := NewNode("loose")
	target.SetPosition(300, 300)

	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Follow(target, 0, 0, 1.0)
	cam.Update(1.0 / 60.0)
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("detached target moved the camera to (%f,%f)", cam.X, cam.Y)
	}
}

func TestCameraUnfollow(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	target := spawn(newTestSystem(), 100, 100, NewPoint())

	cam.Follow(target, 0, 0, 1.0)
	cam.Update(1.0 / 60.0)
	cam.Unfollow()

	target.x = 500
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 100, epsilon) {
		t.Errorf("after unfollow: cam.X = %f, want 100", cam.X)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.ScrollTo(100, 200, 1.0, ease.Linear)

	cam.Update(0.5)
	if !approxEqual(cam.X, 50, 1.0) || !approxEqual(cam.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = (%f,%f), want ~(50,100)", cam.X, cam.Y)
	}

	cam.Update(0.5)
	if !approxEqual(cam.X, 100, 1.0) || !approxEqual(cam.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = (%f,%f), want ~(100,200)", cam.X, cam.Y)
	}
	if cam.scrollTween != nil {
		t.Error("scrollTween not nil after completion")
	}
}

func TestCameraScrollToTile(t *testing.T) {
	level := NewGrid(10, 10, 32, 32)
	level.SetPosition(64, 0)

	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.ScrollToTile(level, 3, 2, 0.0001, ease.Linear)
	cam.Update(1.0)

	// Tile (3,2) spans x 160..192, y 64..96.
	if !approxEqual(cam.X, 176, 1.0) || !approxEqual(cam.Y, 80, 1.0) {
		t.Errorf("ScrollToTile: cam = (%f,%f), want ~(176,80)", cam.X, cam.Y)
	}
}

func TestCameraScrollToTilePanicsOnBox(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a box collider")
		}
	}()
	NewCamera(Rect{Width: 10, Height: 10}).ScrollToTile(NewBox(4, 4), 0, 0, 1, ease.Linear)
}

// --- Bounds ---

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	cam.Update(0)
	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("bounds clamp min: cam = (%f,%f), want (50,50)", cam.X, cam.Y)
	}

	cam.X = 999
	cam.Y = 999
	cam.ClampToBounds()
	if cam.X != 950 || cam.Y != 950 {
		t.Errorf("bounds clamp max: cam = (%f,%f), want (950,950)", cam.X, cam.Y)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	cam.ClearBounds()

	cam.X = -999
	cam.Y = -999
	cam.Update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("after ClearBounds: cam = (%f,%f), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.Update(0)
	if !approxEqual(cam.X, 50, epsilon) || !approxEqual(cam.Y, 50, epsilon) {
		t.Errorf("small world center: cam = (%f,%f), want (50,50)", cam.X, cam.Y)
	}
}

// --- Scene cameras ---

func TestSceneCameras(t *testing.T) {
	scene := NewScene()
	cam1 := scene.NewCamera(Rect{X: 0, Y: 0, Width: 400, Height: 300})
	cam2 := scene.NewCamera(Rect{X: 400, Y: 0, Width: 400, Height: 300})

	cams := scene.Cameras()
	if len(cams) != 2 || cams[0] != cam1 || cams[1] != cam2 {
		t.Fatalf("Cameras = %v, want [cam1 cam2]", cams)
	}

	scene.RemoveCamera(cam1)
	if len(scene.Cameras()) != 1 || scene.Cameras()[0] != cam2 {
		t.Error("RemoveCamera did not remove cam1")
	}
	scene.RemoveCamera(cam1)
	if len(scene.Cameras()) != 1 {
		t.Error("removing an absent camera changed the list")
	}
}

func TestSceneUpdateFollowsAfterOnUpdate(t *testing.T) {
	scene := NewScene()
	hero := NewNode("hero")
	hero.OnUpdate = func(n *Node, _ float64) { n.X += 10 }
	scene.Root().AddChild(hero)

	cam := scene.NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Follow(hero, 0, 0, 1.0)
	scene.UpdateDelta(1.0 / 60.0)
	if cam.X != 10 {
		t.Errorf("cam.X = %v, want 10 (hero position after OnUpdate)", cam.X)
	}
}

// --- Picking and overlay ---

func TestCameraPickAt(t *testing.T) {
	scene := NewScene()
	crate := NewNode("crate")
	crate.SetPosition(100, 100)
	crate.AddCollider(NewBox(20, 20, tagCoin))
	scene.Root().AddChild(crate)
	scene.UpdateDelta(0)

	cam := NewCamera(Rect{X: 0, Y: 0, Width: 200, Height: 200})
	cam.X = 200
	cam.Y = 200
	cam.Zoom = 2
	cam.MarkDirty()

	// world = 200 + (screen-100)/2, so screen (20,20) is world (160,160).
	if hits := cam.PickAt(scene.Collisions(), 20, 20); len(hits) != 0 {
		t.Errorf("PickAt(20,20) = %v, want none", hits)
	}
	// Screen (-90,-90) maps to world (105,105), inside the crate.
	if hits := cam.PickAt(scene.Collisions(), -90, -90, tagCoin); len(hits) != 1 {
		t.Errorf("PickAt(-90,-90) = %v, want the crate", hits)
	}
}

func TestDrawDebugWithCameras(t *testing.T) {
	scene := NewScene()
	n := NewNode("shapes")
	n.SetPosition(20, 20)
	n.AddCollider(NewBox(10, 10))
	n.AddCollider(NewCircle(5))
	grid := NewGrid(2, 2, 4, 4)
	grid.Grid.SetTile(1, 1, true)
	n.AddCollider(grid)
	scene.Root().AddChild(n)
	scene.UpdateDelta(0)

	cam := scene.NewCamera(Rect{X: 0, Y: 0, Width: 32, Height: 32})
	cam.X = 20
	cam.Y = 20
	cam.Rotation = 0.5
	cam.MarkDirty()
	scene.NewCamera(Rect{X: 32, Y: 0, Width: 32, Height: 32})

	dst := ebiten.NewImage(64, 32)
	scene.DrawDebug(dst)
}
