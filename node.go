package bramble

// --- ID counter ---

// nodeIDCounter is a plain counter; bramble is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element that owns colliders. Nodes form a tree
// rooted at Scene.Root; a node's world position is the sum of its own and its
// ancestors' X/Y. A node's colliders are registered with the scene's
// collision system while the node is attached to that scene's tree.
//
// Node implements Owner.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local position relative to Parent.
	X, Y float64

	// Metadata
	UserData any

	// OnUpdate is called once per Scene.Update for every active node, after
	// the collision index has been rebuilt. dt is in seconds.
	OnUpdate func(n *Node, dt float64)

	// Collision state
	active     bool
	collidable bool
	colliders  []*Collider
	scene      *Scene

	// Internal
	disposed bool
}

// NewNode creates an active, collidable node with no colliders.
func NewNode(name string) *Node {
	return &Node{
		ID:         nextNodeID(),
		Name:       name,
		active:     true,
		collidable: true,
	}
}

// --- Owner ---

// Position returns the node's world position.
func (n *Node) Position() (x, y float64) {
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// SetPosition sets the node's local position.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// Active reports whether the node and all its ancestors are active.
func (n *Node) Active() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.active {
			return false
		}
	}
	return true
}

// SetActive enables or disables the node. An inactive node's colliders are
// hidden from queries, the node's OnUpdate is skipped, and the same applies
// to every descendant.
func (n *Node) SetActive(active bool) {
	n.active = active
}

// Collidable reports whether other colliders may find this node's colliders.
func (n *Node) Collidable() bool {
	return n.collidable
}

// SetCollidable controls whether other colliders may find this node's
// colliders. The node's own colliders can still issue queries either way.
func (n *Node) SetCollidable(collidable bool) {
	n.collidable = collidable
}

// Collisions returns the collision system of the scene the node is attached
// to, or nil when the node is detached or disposed.
func (n *Node) Collisions() *CollisionSystem {
	if n.scene == nil || n.disposed {
		return nil
	}
	return n.scene.collisions
}

// Scene returns the scene the node is attached to, or nil.
func (n *Node) Scene() *Scene {
	return n.scene
}

// --- Colliders ---

// AddCollider attaches c to this node. When the node is in a scene the
// collider is registered immediately and can be found by queries in the
// same tick. Adding a collider the node already has is a no-op.
// Panics if c belongs to another owner.
func (n *Node) AddCollider(c *Collider) {
	if c == nil {
		panic("bramble: cannot add nil collider")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddCollider")
	}
	if c.owner == Owner(n) {
		return
	}
	c.SetOwner(n)
	n.colliders = append(n.colliders, c)
	if s := n.Collisions(); s != nil {
		s.Register(c)
	}
}

// RemoveCollider detaches c from this node and unregisters it. No-op if c is
// not attached to this node.
func (n *Node) RemoveCollider(c *Collider) {
	for i, have := range n.colliders {
		if have == c {
			copy(n.colliders[i:], n.colliders[i+1:])
			n.colliders[len(n.colliders)-1] = nil
			n.colliders = n.colliders[:len(n.colliders)-1]
			if c.system != nil {
				c.system.Unregister(c)
			}
			c.owner = nil
			return
		}
	}
}

// Colliders returns the node's colliders. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Colliders() []*Collider {
	return n.colliders
}

// Collider returns the node's first collider, or nil.
func (n *Node) Collider() *Collider {
	if len(n.colliders) == 0 {
		return nil
	}
	return n.colliders[0]
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("bramble: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("bramble: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if n.scene != nil {
		attachSubtree(child, n.scene)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. Its subtree leaves the scene and
// every collider in it is unregistered.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("bramble: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	detachSubtree(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		detachSubtree(child)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Colliders of disposed nodes are
// orphaned, not unregistered: queries ignore them at once and the collision
// system drops them on its next Update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.Parent != nil {
		n.Parent.removeChildByPtr(n)
	}
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	for _, c := range n.colliders {
		c.owner = nil
	}
	n.colliders = nil
	n.children = nil
	n.Parent = nil
	n.scene = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// attachSubtree binds node and its descendants to s and registers their
// colliders.
func attachSubtree(node *Node, s *Scene) {
	node.scene = s
	for _, c := range node.colliders {
		s.collisions.Register(c)
	}
	for _, child := range node.children {
		attachSubtree(child, s)
	}
}

// detachSubtree unbinds node and its descendants from their scene and
// unregisters their colliders.
func detachSubtree(node *Node) {
	if node.scene == nil {
		return
	}
	node.scene = nil
	for _, c := range node.colliders {
		if c.system != nil {
			c.system.Unregister(c)
		}
	}
	for _, child := range node.children {
		detachSubtree(child)
	}
}
