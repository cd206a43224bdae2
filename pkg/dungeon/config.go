package dungeon

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/duskforge/voxeldungeon/pkg/room"
)

// Config specifies all dungeon generation parameters. It supports YAML
// parsing and includes comprehensive validation.
type Config struct {
	// Width, Height, Depth are the voxel extent of the room volume
	// (x, y, z axes respectively).
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	Depth  int `yaml:"depth" json:"depth"`

	// Seed is the master seed for deterministic generation. LoadConfig and
	// LoadConfigFromBytes replace 0 with a seed derived from the current
	// time; Generate uses the value as given, 0 included.
	Seed uint64 `yaml:"seed" json:"seed"`

	// RoomHierarchy is the vertical tier count (>= 1).
	RoomHierarchy int `yaml:"roomHierarchy" json:"roomHierarchy"`

	// RoomWidthRange, RoomHeightRange, RoomDepthRange bound each room's
	// dimensions, inclusive (lower bound >= 1).
	RoomWidthRange  room.Range `yaml:"roomWidthRange" json:"roomWidthRange"`
	RoomHeightRange room.Range `yaml:"roomHeightRange" json:"roomHeightRange"`
	RoomDepthRange  room.Range `yaml:"roomDepthRange" json:"roomDepthRange"`

	// RoomMarginX, RoomMarginY, RoomMarginZ space rooms apart within their
	// tier/block; each is clamped to a minimum of 1 by Validate.
	RoomMarginX int `yaml:"roomMarginX" json:"roomMarginX"`
	RoomMarginY int `yaml:"roomMarginY" json:"roomMarginY"`
	RoomMarginZ int `yaml:"roomMarginZ" json:"roomMarginZ"`

	// PassageHeight is the corridor's interior height in voxels.
	PassageHeight int `yaml:"passageHeight" json:"passageHeight"`

	// MarginForBounds is extra padding around the room volume within which
	// passages may be routed.
	MarginForBounds int `yaml:"marginForBounds" json:"marginForBounds"`

	// OptionalConnectionProbability is the per-edge probability that a
	// Delaunay edge not already in the required set is attempted as an
	// optional passage.
	OptionalConnectionProbability float64 `yaml:"optionalConnectionProbability" json:"optionalConnectionProbability"`
}

// DefaultOptionalConnectionProbability is used by NewDefaultConfig and by
// callers that construct a Config directly without overriding the field.
const DefaultOptionalConnectionProbability = 0.3

// NewDefaultConfig returns a Config with sensible default field values,
// seed left at 0.
func NewDefaultConfig() *Config {
	return &Config{
		Width:                         32,
		Height:                        16,
		Depth:                         32,
		RoomHierarchy:                 3,
		RoomWidthRange:                room.Range{Min: 5, Max: 10},
		RoomHeightRange:               room.Range{Min: 2, Max: 3},
		RoomDepthRange:                room.Range{Min: 5, Max: 10},
		RoomMarginX:                   2,
		RoomMarginY:                   2,
		RoomMarginZ:                   2,
		PassageHeight:                 2,
		MarginForBounds:               4,
		OptionalConnectionProbability: DefaultOptionalConnectionProbability,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice, useful
// for tests and programmatic config generation.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every configuration constraint, clamping margins to a
// minimum of 1 first.
func (c *Config) Validate() error {
	if c.RoomMarginX < 1 {
		c.RoomMarginX = 1
	}
	if c.RoomMarginY < 1 {
		c.RoomMarginY = 1
	}
	if c.RoomMarginZ < 1 {
		c.RoomMarginZ = 1
	}

	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		return fmt.Errorf("width, height, and depth must all be positive, got (%d, %d, %d)", c.Width, c.Height, c.Depth)
	}
	if c.RoomHierarchy < 1 {
		return fmt.Errorf("roomHierarchy must be at least 1, got %d", c.RoomHierarchy)
	}
	if c.RoomWidthRange.Min < 1 || c.RoomHeightRange.Min < 1 || c.RoomDepthRange.Min < 1 {
		return fmt.Errorf("room dimension ranges must have a lower bound >= 1, got width=%v height=%v depth=%v",
			c.RoomWidthRange, c.RoomHeightRange, c.RoomDepthRange)
	}
	if c.PassageHeight <= 0 {
		return fmt.Errorf("passageHeight must be positive, got %d", c.PassageHeight)
	}
	if c.MarginForBounds < 0 {
		return fmt.Errorf("marginForBounds must be non-negative, got %d", c.MarginForBounds)
	}
	if c.OptionalConnectionProbability < 0 || c.OptionalConnectionProbability > 1 {
		return fmt.Errorf("optionalConnectionProbability must be in [0, 1], got %f", c.OptionalConnectionProbability)
	}

	wDivisionsMin := c.Width / (c.RoomWidthRange.Min + c.RoomMarginX)
	if wDivisionsMin == 0 {
		return ErrNarrowWidth
	}
	dDivisionsMin := c.Depth / (c.RoomDepthRange.Min + c.RoomMarginZ)
	if dDivisionsMin == 0 {
		return ErrNarrowDepth
	}
	if c.RoomHierarchy*(c.RoomHeightRange.Min+c.RoomMarginY) > c.Height {
		return ErrNarrowHeight
	}

	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, used for
// deriving independent per-stage RNG seeds from a single master seed.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed creates a seed from the current time, used when the caller
// leaves Seed at its zero value.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// placementConfig adapts Config into pkg/room's PlacementConfig.
func (c *Config) placementConfig() room.PlacementConfig {
	return room.PlacementConfig{
		Width:           c.Width,
		Height:          c.Height,
		Depth:           c.Depth,
		RoomHierarchy:   c.RoomHierarchy,
		RoomWidthRange:  c.RoomWidthRange,
		RoomHeightRange: c.RoomHeightRange,
		RoomDepthRange:  c.RoomDepthRange,
		MarginX:         c.RoomMarginX,
		MarginY:         c.RoomMarginY,
		MarginZ:         c.RoomMarginZ,
	}
}
