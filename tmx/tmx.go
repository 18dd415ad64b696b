// Package tmx builds bramble colliders from Tiled maps.
//
// Tile layers become grid colliders: every non-empty tile is solid unless
// its tileset tile has a "solid" property set to "false". Object groups
// become one collider per object: rectangles become boxes, ellipses circles,
// polygons polygons, and two-point polylines lines. An object's "tags"
// property lists tag names, separated by commas, resolved through the map
// passed to the loader.
package tmx

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/phanxgames/bramble"
)

// ErrLayerNotFound is returned when a named tile layer does not exist.
var ErrLayerNotFound = errors.New("tmx: layer not found")

// Load parses a TMX file from fsys, which may be an embed.FS or os.DirFS.
// External tilesets are resolved relative to path inside fsys.
func Load(fsys fs.FS, path string) (*tiled.Map, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}
	return m, nil
}

// LoadGrid loads a TMX file and returns a grid collider for the named tile
// layer. See GridFromMap.
func LoadGrid(fsys fs.FS, path, layer string, tags ...bramble.Tag) (*bramble.Collider, error) {
	m, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	c, err := GridFromMap(m, layer, tags...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// GridFromMap returns a grid collider covering the whole map, with the
// occupancy of the named tile layer. The collider sits at offset (0, 0), so
// an owner at the map origin lines it up with the map.
func GridFromMap(m *tiled.Map, layer string, tags ...bramble.Tag) (*bramble.Collider, error) {
	for _, l := range m.Layers {
		if l.Name != layer {
			continue
		}
		gids := make([]uint32, m.Width*m.Height)
		for i := range gids {
			if i >= len(l.Tiles) {
				break
			}
			tile := l.Tiles[i]
			if tile.IsNil() || !tileSolid(tile) {
				continue
			}
			gids[i] = tile.Tileset.FirstGID + tile.ID
		}
		g := bramble.NewGridFromGIDs(m.Width, m.Height,
			float64(m.TileWidth), float64(m.TileHeight), gids, nil)
		return bramble.NewGridFrom(g, tags...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, layer)
}

// tileSolid reports whether a non-empty tile collides.
func tileSolid(tile *tiled.LayerTile) bool {
	if tile.Tileset == nil {
		return true
	}
	tt, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return true
	}
	return tt.Properties.GetString("solid") != "false"
}

// Object is a collider built from a Tiled object, positioned at the object's
// top-left corner.
type Object struct {
	ID         uint32
	Name       string
	X, Y       float64
	Collider   *bramble.Collider
	Properties tiled.Properties
}

// Node returns a new node at the object's position carrying its collider.
func (o Object) Node() *bramble.Node {
	n := bramble.NewNode(o.Name)
	n.SetPosition(o.X, o.Y)
	n.AddCollider(o.Collider)
	return n
}

// LoadObjects loads a TMX file and returns the colliders of the named object
// group. See ObjectsFromMap.
func LoadObjects(fsys fs.FS, path, group string, tagNames map[string]bramble.Tag) ([]Object, error) {
	m, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	return ObjectsFromMap(m, group, tagNames)
}

// ObjectsFromMap returns one collider per object in the named object group,
// in map order. Objects whose shape has no collider equivalent (text,
// points, polylines of more than two points) are skipped with a warning. A
// missing group yields no objects and a warning.
func ObjectsFromMap(m *tiled.Map, group string, tagNames map[string]bramble.Tag) ([]Object, error) {
	for _, og := range m.ObjectGroups {
		if og.Name != group {
			continue
		}
		objs := make([]Object, 0, len(og.Objects))
		for _, o := range og.Objects {
			tags, err := parseTags(o.Properties.GetString("tags"), tagNames)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", o.ID, o.Name, err)
			}
			c := objectCollider(o, tags)
			if c == nil {
				log.Printf("bramble: tmx object %d (%s) in %q has no collider shape, skipped", o.ID, o.Name, group)
				continue
			}
			objs = append(objs, Object{
				ID:         o.ID,
				Name:       o.Name,
				X:          o.X,
				Y:          o.Y,
				Collider:   c,
				Properties: o.Properties,
			})
		}
		return objs, nil
	}
	log.Printf("bramble: tmx object group %q not found", group)
	return nil, nil
}

func objectCollider(o *tiled.Object, tags []bramble.Tag) *bramble.Collider {
	switch {
	case len(o.Polygons) > 0 && o.Polygons[0].Points != nil:
		pts := *o.Polygons[0].Points
		if len(pts) < 3 {
			return nil
		}
		vs := make([]bramble.Vec2, len(pts))
		for i, p := range pts {
			vs[i] = bramble.Vec2{X: p.X, Y: p.Y}
		}
		c := bramble.NewPolygon(vs, tags...)
		if o.Rotation != 0 {
			c.SetRotation(o.Rotation * degToRad)
		}
		return c
	case len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil:
		pts := *o.PolyLines[0].Points
		if len(pts) != 2 {
			return nil
		}
		return bramble.NewLine(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, tags...)
	case o.Ellipse != nil:
		if o.Width <= 0 {
			return nil
		}
		return bramble.NewCircle(min(o.Width, o.Height)/2, tags...)
	case o.Width > 0 && o.Height > 0:
		if o.Rotation != 0 {
			// Tiled rotates rectangles about their top-left corner.
			c := bramble.NewPolygon([]bramble.Vec2{
				{X: 0, Y: 0}, {X: o.Width, Y: 0}, {X: o.Width, Y: o.Height}, {X: 0, Y: o.Height},
			}, tags...)
			c.SetRotation(o.Rotation * degToRad)
			return c
		}
		return bramble.NewBox(o.Width, o.Height, tags...)
	}
	return nil
}

const degToRad = math.Pi / 180

// parseTags resolves a comma-separated list of tag names.
func parseTags(s string, names map[string]bramble.Tag) ([]bramble.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var tags []bramble.Tag
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := names[name]
		if !ok {
			return nil, fmt.Errorf("unknown tag %q", name)
		}
		tags = append(tags, t)
	}
	return tags, nil
}
