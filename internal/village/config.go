package village

import (
	"fmt"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/lsystem"
	"github.com/lawnchairsociety/tiergen/internal/terrain"
)

// SpawnMode decides where vegetation is scattered
type SpawnMode int

const (
	PerRoom       SpawnMode = iota // Ring of cells around every room
	GlobalScatter                  // Anywhere on the map
)

// String returns the string representation of a SpawnMode
func (m SpawnMode) String() string {
	switch m {
	case PerRoom:
		return "per_room"
	case GlobalScatter:
		return "global"
	default:
		return "unknown"
	}
}

// ParseSpawnMode converts a spawn mode name to a SpawnMode
func ParseSpawnMode(s string) (SpawnMode, error) {
	switch s {
	case "", "per_room":
		return PerRoom, nil
	case "global":
		return GlobalScatter, nil
	default:
		return PerRoom, fmt.Errorf("unknown spawn mode %q", s)
	}
}

// VegetationConfig controls tree placement and growth
type VegetationConfig struct {
	Enabled     bool
	Mode        SpawnMode
	PerRoom     int // Trees per room in PerRoom mode
	RingMargin  int // Distance of the ring from the room edge, in cells
	GlobalCount int // Trees in GlobalScatter mode
	AvoidWater  bool
	AvoidRooms  bool
	Jitter      float64 // Max horizontal offset from the cell center
	BaseYOffset float64

	Grammar    lsystem.Preset
	Iterations int
}

// HouseConfig controls house placement inside rooms
type HouseConfig struct {
	Enabled         bool
	Margin          int     // Cells kept free along room walls
	FillProbability float64 // Chance that an eligible cell gets a house
	YOffset         float64
	Jitter          float64
}

// Config is the complete input of one scene
type Config struct {
	Seed          int64
	RandomizeSeed bool
	CellSize      float64

	Noise   terrain.NoiseParams
	Tiers   terrain.TierMapper
	Shaping terrain.Shaping
	Masks   *terrain.MaskSet // nil uses terrain.DefaultMaskSet
	Layout  bsp.Config

	Vegetation VegetationConfig
	Houses     HouseConfig

	WaterYOffset float64
	FloorYOffset float64
}

// DefaultConfig returns an 80x80 village with trees around the rooms
func DefaultConfig() Config {
	noise := terrain.DefaultNoiseParams()
	noise.Width, noise.Depth = 80, 80

	layout := bsp.DefaultConfig()
	layout.Width, layout.Height = 80, 80

	tree := lsystem.Tree3D()
	tree.Step = 0.1

	return Config{
		CellSize: 1,
		Noise:    noise,
		Tiers:    terrain.DefaultTierMapper(),
		Layout:   layout,
		Vegetation: VegetationConfig{
			Enabled:     true,
			Mode:        PerRoom,
			PerRoom:     2,
			RingMargin:  1,
			GlobalCount: 30,
			AvoidWater:  true,
			AvoidRooms:  true,
			Jitter:      0.2,
			BaseYOffset: 0.02,
			Grammar:     tree,
			Iterations:  3,
		},
		Houses: HouseConfig{
			Margin:          1,
			FillProbability: 1,
		},
		WaterYOffset: 0.01,
		FloorYOffset: 0.02,
	}
}

// normalize clamps values the pipeline divides or loops by
func (c *Config) normalize() {
	if !(c.CellSize > 0) {
		c.CellSize = 1
	}
	c.Noise.Normalize()
	c.Tiers.Normalize()
	c.Layout.Normalize()

	v := &c.Vegetation
	v.PerRoom = max(v.PerRoom, 0)
	v.RingMargin = max(v.RingMargin, 0)
	v.GlobalCount = max(v.GlobalCount, 0)
	v.Jitter = max(v.Jitter, 0)
	v.Iterations = max(v.Iterations, 0)

	h := &c.Houses
	h.Margin = max(h.Margin, 0)
	h.FillProbability = min(max(h.FillProbability, 0), 1)
	h.Jitter = max(h.Jitter, 0)
}
