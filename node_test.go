package bramble

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if !n.Active() || !n.Collidable() {
		t.Error("new node should be active and collidable")
	}
	if n.Collisions() != nil || n.Scene() != nil {
		t.Error("detached node should have no scene")
	}
	if n.Collider() != nil {
		t.Error("new node should have no colliders")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Position ---

func TestPositionSumsAncestors(t *testing.T) {
	s := NewScene()
	parent := NewNode("parent")
	parent.SetPosition(100, 50)
	child := NewNode("child")
	child.SetPosition(10, -5)
	parent.AddChild(child)
	s.Root().AddChild(parent)

	x, y := child.Position()
	if x != 110 || y != 45 {
		t.Errorf("Position = (%v, %v), want (110, 45)", x, y)
	}

	box := NewBox(4, 4)
	child.AddCollider(box)
	if b := box.Bounds(); b.X != 110 || b.Y != 45 {
		t.Errorf("collider bounds = %v, want origin (110, 45)", b)
	}
}

func TestActiveInheritsFromAncestors(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetActive(false)
	if child.Active() {
		t.Error("child of an inactive parent should be inactive")
	}
	parent.SetActive(true)
	if !child.Active() {
		t.Error("child should be active again")
	}
}

// --- Tree ---

func TestAddChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not in parent's children")
	}
	if parent.FindChild("child") != child || parent.FindChild("nope") != nil {
		t.Error("FindChild mismatch")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Error("child should be removed from old parent")
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewNode("a").AddChild(nil)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong parent")
		}
	}()
	a.RemoveChild(b)
}

func TestRemoveChildrenAndFromParent(t *testing.T) {
	parent := NewNode("parent")
	c1 := NewNode("c1")
	c2 := NewNode("c2")
	parent.AddChild(c1)
	parent.AddChild(c2)

	c1.RemoveFromParent()
	if parent.NumChildren() != 1 || c1.Parent != nil {
		t.Error("RemoveFromParent did not detach c1")
	}
	c1.RemoveFromParent() // no-op

	parent.RemoveChildren()
	if parent.NumChildren() != 0 || c2.Parent != nil {
		t.Error("RemoveChildren did not detach c2")
	}
	if c2.IsDisposed() {
		t.Error("RemoveChildren should not dispose")
	}
}

// --- Colliders and registration ---

func TestAddColliderRegistersWhenAttached(t *testing.T) {
	s := NewScene()
	n := NewNode("n")
	box := NewBox(4, 4, tagWall)
	n.AddCollider(box)

	if box.Owner() != Owner(n) {
		t.Error("collider owner not set")
	}
	if s.Collisions().IsRegistered(box) {
		t.Error("collider of a detached node should not be registered")
	}

	s.Root().AddChild(n)
	if !s.Collisions().IsRegistered(box) {
		t.Error("attaching the node should register its collider")
	}

	extra := NewCircle(2)
	n.AddCollider(extra)
	if !s.Collisions().IsRegistered(extra) {
		t.Error("collider added to an attached node should register at once")
	}
	n.AddCollider(extra)
	if len(n.Colliders()) != 2 {
		t.Errorf("adding a collider twice gave %d colliders", len(n.Colliders()))
	}
}

func TestAddColliderTwoOwnersPanics(t *testing.T) {
	c := NewBox(1, 1)
	NewNode("a").AddCollider(c)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for second owner")
		}
	}()
	NewNode("b").AddCollider(c)
}

func TestRemoveCollider(t *testing.T) {
	s := NewScene()
	n := NewNode("n")
	box := NewBox(4, 4)
	n.AddCollider(box)
	s.Root().AddChild(n)

	n.RemoveCollider(box)
	if s.Collisions().IsRegistered(box) || box.Owner() != nil {
		t.Error("RemoveCollider should unregister and orphan the collider")
	}
	if len(n.Colliders()) != 0 {
		t.Error("collider still listed on the node")
	}

	// The collider can be reused elsewhere.
	other := NewNode("other")
	other.AddCollider(box)
	if box.Owner() != Owner(other) {
		t.Error("collider should accept a new owner")
	}
}

func TestRemoveChildUnregistersSubtree(t *testing.T) {
	s := NewScene()
	parent := NewNode("parent")
	child := NewNode("child")
	pc := NewBox(4, 4)
	cc := NewBox(4, 4)
	parent.AddCollider(pc)
	child.AddCollider(cc)
	parent.AddChild(child)
	s.Root().AddChild(parent)

	if s.Collisions().Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Collisions().Len())
	}
	s.Root().RemoveChild(parent)
	if s.Collisions().Len() != 0 {
		t.Errorf("Len after RemoveChild = %d, want 0", s.Collisions().Len())
	}
	if child.Scene() != nil || child.Collisions() != nil {
		t.Error("descendant still bound to the scene")
	}

	// Re-attaching registers them again.
	s.Root().AddChild(parent)
	if s.Collisions().Len() != 2 {
		t.Errorf("Len after re-attach = %d, want 2", s.Collisions().Len())
	}
}

// --- Dispose ---

func TestDisposeOrphansColliders(t *testing.T) {
	s := NewScene()
	n := NewNode("n")
	child := NewNode("child")
	box := NewBox(4, 4)
	cbox := NewBox(4, 4)
	n.AddCollider(box)
	child.AddCollider(cbox)
	n.AddChild(child)
	s.Root().AddChild(n)

	n.Dispose()
	if !n.IsDisposed() || !child.IsDisposed() {
		t.Error("node and descendants should be disposed")
	}
	if n.ID != 0 {
		t.Error("disposed node ID should be zero")
	}
	if box.Owner() != nil || cbox.Owner() != nil {
		t.Error("disposed colliders should be orphaned")
	}
	if s.Root().NumChildren() != 0 {
		t.Error("disposed node still in parent")
	}
	if n.Collisions() != nil {
		t.Error("disposed node should have no collision system")
	}

	// Still listed until the next Update prunes them.
	if s.Collisions().Len() != 2 {
		t.Errorf("Len before Update = %d, want 2", s.Collisions().Len())
	}
	s.UpdateDelta(0)
	if s.Collisions().Len() != 0 {
		t.Errorf("Len after Update = %d, want 0", s.Collisions().Len())
	}

	n.Dispose() // no-op
}

func TestDebugDisposedPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewNode("gone")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for AddChild on disposed node in debug mode")
		}
	}()
	n.AddChild(NewNode("child"))
}
