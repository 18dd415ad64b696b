package bramble

import (
	"slices"
	"testing"
)

func TestNewBoxDefaults(t *testing.T) {
	c := NewBox(16, 8, tagWall, tagHero, tagWall)
	if c.Kind != ShapeBox {
		t.Errorf("Kind = %v, want box", c.Kind)
	}
	if !c.Collidable {
		t.Error("new collider should be collidable")
	}
	if !slices.Equal(c.Tags(), []Tag{tagWall, tagHero}) {
		t.Errorf("Tags = %v, duplicate tags should collapse", c.Tags())
	}
	if c.Owner() != nil || c.System() != nil {
		t.Error("new collider should be unowned and unregistered")
	}
	if b := c.Bounds(); b != (Rect{0, 0, 16, 8}) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestConstructorPanics(t *testing.T) {
	for name, fn := range map[string]func(){
		"negative box":    func() { NewBox(-1, 1) },
		"negative circle": func() { NewCircle(-1) },
		"nil grid":        func() { NewGridFrom(nil) },
		"nil mask":        func() { NewPixel(nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestTags(t *testing.T) {
	c := NewBox(1, 1)
	c.AddTag(tagCoin, tagHazard)
	if !c.HasTag(tagCoin) || !c.HasAnyTag([]Tag{tagWall, tagHazard}) {
		t.Error("HasTag/HasAnyTag missed an added tag")
	}
	c.RemoveTag(tagCoin, tagWall)
	if c.HasTag(tagCoin) {
		t.Error("RemoveTag did not remove tagCoin")
	}
	if c.HasAnyTag([]Tag{tagWall, tagCoin}) || c.HasAnyTag(nil) {
		t.Error("HasAnyTag should be false")
	}
	if !slices.Equal(c.Tags(), []Tag{tagHazard}) {
		t.Errorf("Tags = %v, want [hazard]", c.Tags())
	}
}

func TestBoundsFollowOwnerOffsetAndOrigin(t *testing.T) {
	o := &testOwner{x: 100, y: 50}
	c := NewBox(20, 10)
	c.SetOwner(o)
	c.SetPosition(5, 5)
	c.SetOrigin(10, 5)

	if c.Left() != 95 || c.Top() != 50 || c.Right() != 115 || c.Bottom() != 60 {
		t.Errorf("edges = %v %v %v %v", c.Left(), c.Top(), c.Right(), c.Bottom())
	}
	if c.CenterX() != 105 || c.CenterY() != 55 {
		t.Errorf("center = (%v, %v)", c.CenterX(), c.CenterY())
	}

	o.x = 0
	if c.Left() != -5 {
		t.Errorf("Left after owner move = %v, want -5", c.Left())
	}
}

func TestCenterOrigin(t *testing.T) {
	box := NewBox(20, 10)
	box.CenterOrigin()
	if box.OriginX != 10 || box.OriginY != 5 {
		t.Errorf("box origin = (%v, %v)", box.OriginX, box.OriginY)
	}

	circle := NewCircle(4)
	circle.CenterOrigin()
	if b := circle.Bounds(); b != (Rect{-4, -4, 8, 8}) {
		t.Errorf("circle bounds = %v", b)
	}

	line := NewLine(0, 0, 10, 4)
	line.CenterOrigin()
	if b := line.Bounds(); b != (Rect{-5, -2, 10, 4}) {
		t.Errorf("line bounds = %v", b)
	}

	p := NewPoint()
	p.SetOrigin(3, 3)
	p.CenterOrigin()
	if p.OriginX != 0 || p.OriginY != 0 {
		t.Error("point origin should reset to its anchor")
	}
}

func TestLineBoundsWithNegativeEndpoints(t *testing.T) {
	c := NewLine(10, 0, -10, 6)
	if b := c.Bounds(); b != (Rect{-10, 0, 20, 6}) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestGridAndPixelBounds(t *testing.T) {
	g := NewGrid(4, 2, 8, 16)
	if b := g.Bounds(); b != (Rect{0, 0, 32, 32}) {
		t.Errorf("grid bounds = %v", b)
	}
	px := NewPixel(newTestMask(5, 3))
	px.SetPosition(1, 2)
	if b := px.Bounds(); b != (Rect{1, 2, 5, 3}) {
		t.Errorf("pixel bounds = %v", b)
	}
}

func TestSetOwnerTwicePanics(t *testing.T) {
	c := NewBox(1, 1)
	c.SetOwner(&testOwner{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a second owner")
		}
	}()
	c.SetOwner(&testOwner{})
}

func TestColliderString(t *testing.T) {
	c := NewBox(8, 4)
	c.SetPosition(2, 3)
	if got := c.String(); got != "box(2,3 8x4)" {
		t.Errorf("String = %q", got)
	}
}
