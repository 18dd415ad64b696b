package bramble

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned (wrapped) when a CollisionConfig fails
// validation.
var ErrInvalidConfig = errors.New("bramble: invalid collision config")

// CollisionConfig holds the fixed tuning of a CollisionSystem. It is read
// once at construction and never changes afterwards.
//
// The world bounds must contain every collider in the game. Colliders outside
// them are still found, but without spatial acceleration; bounds that are
// too small are a configuration error, not something the system corrects.
type CollisionConfig struct {
	// World bounds covered by the quadtree root.
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`

	// MaxEntries is the number of entries a quadtree node holds before it
	// splits (the split factor).
	MaxEntries int `yaml:"max_entries"`

	// MaxDepth is the deepest a quadtree node may be split to.
	MaxDepth int `yaml:"max_depth"`

	// Margin pads indexed bounding boxes and query boxes so fast-moving
	// colliders are not missed by the broad phase between rebuilds.
	Margin float64 `yaml:"margin"`
}

// DefaultCollisionConfig returns a configuration suitable for most 2D games:
// a world of ±65536 pixels, 8 entries per node, depth 8, and a 4 pixel
// margin.
func DefaultCollisionConfig() CollisionConfig {
	return CollisionConfig{
		MinX:       -65536,
		MinY:       -65536,
		MaxX:       65536,
		MaxY:       65536,
		MaxEntries: 8,
		MaxDepth:   8,
		Margin:     4,
	}
}

// WorldBounds returns the configured world bounds as a Rect.
func (c CollisionConfig) WorldBounds() Rect {
	return Rect{c.MinX, c.MinY, c.MaxX - c.MinX, c.MaxY - c.MinY}
}

// Validate reports whether the configuration can build a quadtree.
func (c CollisionConfig) Validate() error {
	switch {
	case c.MaxX <= c.MinX || c.MaxY <= c.MinY:
		return fmt.Errorf("%w: world bounds (%v,%v)-(%v,%v) are empty", ErrInvalidConfig, c.MinX, c.MinY, c.MaxX, c.MaxY)
	case c.MaxEntries < 1:
		return fmt.Errorf("%w: max_entries must be at least 1, got %d", ErrInvalidConfig, c.MaxEntries)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative, got %v", ErrInvalidConfig, c.Margin)
	}
	return nil
}

// LoadCollisionConfig parses a YAML document over DefaultCollisionConfig and
// validates the result. Keys that are absent keep their default values:
//
//	min_x: -4096
//	min_y: -4096
//	max_x: 4096
//	max_y: 4096
//	max_entries: 16
//	max_depth: 6
//	margin: 2
func LoadCollisionConfig(data []byte) (CollisionConfig, error) {
	cfg := DefaultCollisionConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CollisionConfig{}, fmt.Errorf("bramble: unmarshal collision config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CollisionConfig{}, err
	}
	return cfg, nil
}
