package bramble

// GID flag bits (same convention as Tiled TMX format).
const (
	TileFlipH    uint32 = 1 << 31 // horizontal flip
	TileFlipV    uint32 = 1 << 30 // vertical flip
	TileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	TileFlagMask uint32 = TileFlipH | TileFlipV | TileFlipD
)

// NewGridFromGIDs builds an occupancy table from row-major tile GIDs, the
// same layout a tilemap layer stores. A tile is solid when its GID, with the
// flip flags masked off, is non-zero and solid reports true for it. A nil
// solid treats every non-empty tile as solid.
func NewGridFromGIDs(cols, rows int, tileW, tileH float64, data []uint32, solid func(gid uint32) bool) *Grid {
	g := NewGridTable(cols, rows, tileW, tileH)
	n := min(len(data), cols*rows)
	for i := 0; i < n; i++ {
		gid := data[i] &^ TileFlagMask
		if gid == 0 {
			continue
		}
		if solid == nil || solid(gid) {
			g.cells[i] = true
		}
	}
	return g
}
