package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/lsystem"
	"github.com/lawnchairsociety/tiergen/internal/terrain"
	"github.com/lawnchairsociety/tiergen/internal/village"
)

// ErrInvalidConfig is returned when a document does not match the level schema.
var ErrInvalidConfig = errors.New("invalid level config")

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("schema.json", schemaSource)

// LevelConfig is the YAML document describing one level.
type LevelConfig struct {
	Seed          int64   `yaml:"seed"`
	RandomizeSeed bool    `yaml:"randomize_seed"`
	CellSize      float64 `yaml:"cell_size"`
	WaterYOffset  float64 `yaml:"water_y_offset"`
	FloorYOffset  float64 `yaml:"floor_y_offset"`

	Terrain    TerrainConfig    `yaml:"terrain"`
	Tiers      TierConfig       `yaml:"tiers"`
	Masks      *MaskConfig      `yaml:"masks"`
	Layout     LayoutConfig     `yaml:"layout"`
	Vegetation VegetationConfig `yaml:"vegetation"`
	Houses     HouseConfig      `yaml:"houses"`
}

// TerrainConfig holds the noise settings of the height field.
type TerrainConfig struct {
	Width       int           `yaml:"width"`
	Depth       int           `yaml:"depth"`
	Scale       float64       `yaml:"scale"`
	Octaves     int           `yaml:"octaves"`
	Lacunarity  float64       `yaml:"lacunarity"`
	Persistence float64       `yaml:"persistence"`
	OffsetX     float64       `yaml:"offset_x"`
	OffsetY     float64       `yaml:"offset_y"`
	Basis       string        `yaml:"basis"`
	Shaping     ShapingConfig `yaml:"shaping"`
}

// ShapingConfig holds the optional plateau and terrace pass.
type ShapingConfig struct {
	PlateauMode   string  `yaml:"plateau_mode"`
	PlateauMin    float64 `yaml:"plateau_min"`
	PlateauMax    float64 `yaml:"plateau_max"`
	PlateauLevel  float64 `yaml:"plateau_level"`
	PlateauFactor float64 `yaml:"plateau_factor"`
	TerraceSteps  int     `yaml:"terrace_steps"`
}

// TierConfig holds the elevation quantization settings.
type TierConfig struct {
	Count       int     `yaml:"count"`
	Height      float64 `yaml:"height"`
	Edge        string  `yaml:"edge"`
	SmoothRange float64 `yaml:"smooth_range"`
}

// MaskConfig overrides the tier allow-lists of the named masks.
type MaskConfig struct {
	Water     []int `yaml:"water"`
	Buildable []int `yaml:"buildable"`
	Land      []int `yaml:"land"`
}

// LayoutConfig holds the room and corridor settings.
type LayoutConfig struct {
	Width                int    `yaml:"width"`
	Height               int    `yaml:"height"`
	MinRoomSize          int    `yaml:"min_room_size"`
	MaxRoomSize          int    `yaml:"max_room_size"`
	MinLeafSize          int    `yaml:"min_leaf_size"`
	Corridors            string `yaml:"corridors"`
	ForbidMultiTierRooms bool   `yaml:"forbid_multi_tier_rooms"`
	EnemiesPerRoom       int    `yaml:"enemies_per_room"`
	MaskedCorridors      bool   `yaml:"masked_corridors"`
}

// VegetationConfig holds tree placement and the grammar the trees grow from.
// Axiom and rules replace the preset's when set; angle and step override it when positive.
type VegetationConfig struct {
	Enabled     bool                `yaml:"enabled"`
	Mode        string              `yaml:"mode"`
	PerRoom     int                 `yaml:"per_room"`
	RingMargin  int                 `yaml:"ring_margin"`
	GlobalCount int                 `yaml:"global_count"`
	AvoidWater  bool                `yaml:"avoid_water"`
	AvoidRooms  bool                `yaml:"avoid_rooms"`
	Jitter      float64             `yaml:"jitter"`
	BaseYOffset float64             `yaml:"base_y_offset"`
	Preset      string              `yaml:"preset"`
	Axiom       string              `yaml:"axiom"`
	Rules       map[string][]string `yaml:"rules"`
	Iterations  int                 `yaml:"iterations"`
	Angle       float64             `yaml:"angle"`
	Step        float64             `yaml:"step"`
	ThreeD      *bool               `yaml:"three_d"`
}

// HouseConfig holds house placement inside rooms.
type HouseConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Margin          int     `yaml:"margin"`
	FillProbability float64 `yaml:"fill_probability"`
	YOffset         float64 `yaml:"y_offset"`
	Jitter          float64 `yaml:"jitter"`
}

// DefaultConfig returns a LevelConfig matching village.DefaultConfig.
func DefaultConfig() *LevelConfig {
	v := village.DefaultConfig()
	return &LevelConfig{
		Seed:         v.Seed,
		CellSize:     v.CellSize,
		WaterYOffset: v.WaterYOffset,
		FloorYOffset: v.FloorYOffset,
		Terrain: TerrainConfig{
			Width:       v.Noise.Width,
			Depth:       v.Noise.Depth,
			Scale:       v.Noise.Scale,
			Octaves:     v.Noise.Octaves,
			Lacunarity:  v.Noise.Lacunarity,
			Persistence: v.Noise.Persistence,
			Basis:       v.Noise.Basis.String(),
			Shaping:     ShapingConfig{PlateauMode: v.Shaping.Mode.String()},
		},
		Tiers: TierConfig{
			Count:       v.Tiers.Count,
			Height:      v.Tiers.Height,
			Edge:        v.Tiers.Edge.String(),
			SmoothRange: v.Tiers.SmoothRange,
		},
		Layout: LayoutConfig{
			Width:                v.Layout.Width,
			Height:               v.Layout.Height,
			MinRoomSize:          v.Layout.MinRoomSize,
			MaxRoomSize:          v.Layout.MaxRoomSize,
			MinLeafSize:          v.Layout.MinLeafSize,
			Corridors:            v.Layout.Corridors.String(),
			ForbidMultiTierRooms: v.Layout.ForbidMultiTierRooms,
			EnemiesPerRoom:       v.Layout.EnemiesPerRoom,
			MaskedCorridors:      v.Layout.MaskedCorridors,
		},
		Vegetation: VegetationConfig{
			Enabled:     v.Vegetation.Enabled,
			Mode:        v.Vegetation.Mode.String(),
			PerRoom:     v.Vegetation.PerRoom,
			RingMargin:  v.Vegetation.RingMargin,
			GlobalCount: v.Vegetation.GlobalCount,
			AvoidWater:  v.Vegetation.AvoidWater,
			AvoidRooms:  v.Vegetation.AvoidRooms,
			Jitter:      v.Vegetation.Jitter,
			BaseYOffset: v.Vegetation.BaseYOffset,
			Preset:      v.Vegetation.Grammar.Name,
			Iterations:  v.Vegetation.Iterations,
			Step:        v.Vegetation.Grammar.Step,
		},
		Houses: HouseConfig{
			Enabled:         v.Houses.Enabled,
			Margin:          v.Houses.Margin,
			FillProbability: v.Houses.FillProbability,
			YOffset:         v.Houses.YOffset,
			Jitter:          v.Houses.Jitter,
		},
	}
}

// LoadConfig loads a level configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*LevelConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, fmt.Errorf("reading level config: %w", err)
	}

	if err := Validate(data); err != nil {
		return DefaultConfig(), err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing level config: %w", err)
	}

	return config, nil
}

// Validate checks a YAML document against the level schema.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing level config: %w", err)
	}
	if doc == nil {
		return nil // Empty document keeps the defaults
	}

	// The validator expects JSON values, so round-trip through encoding/json
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ToVillage converts the document into a pipeline config. Enum names are
// resolved here; numeric ranges are clamped by the generators.
func (c *LevelConfig) ToVillage() (village.Config, error) {
	v := village.DefaultConfig()
	v.Seed = c.Seed
	v.RandomizeSeed = c.RandomizeSeed
	v.CellSize = c.CellSize
	v.WaterYOffset = c.WaterYOffset
	v.FloorYOffset = c.FloorYOffset

	basis, err := terrain.ParseNoiseBasis(c.Terrain.Basis)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	v.Noise = terrain.NoiseParams{
		Width:       c.Terrain.Width,
		Depth:       c.Terrain.Depth,
		Scale:       c.Terrain.Scale,
		Octaves:     c.Terrain.Octaves,
		Lacunarity:  c.Terrain.Lacunarity,
		Persistence: c.Terrain.Persistence,
		Offset:      terrain.Vec2{X: c.Terrain.OffsetX, Y: c.Terrain.OffsetY},
		Basis:       basis,
	}

	plateau, err := terrain.ParsePlateauMode(c.Terrain.Shaping.PlateauMode)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s := c.Terrain.Shaping
	v.Shaping = terrain.Shaping{
		Mode:          plateau,
		PlateauMin:    s.PlateauMin,
		PlateauMax:    s.PlateauMax,
		PlateauLevel:  s.PlateauLevel,
		PlateauFactor: s.PlateauFactor,
		TerraceSteps:  s.TerraceSteps,
	}

	edge, err := terrain.ParseEdgeMode(c.Tiers.Edge)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	v.Tiers = terrain.TierMapper{
		Count:       c.Tiers.Count,
		Height:      c.Tiers.Height,
		Edge:        edge,
		SmoothRange: c.Tiers.SmoothRange,
	}

	if c.Masks != nil {
		v.Masks = &terrain.MaskSet{
			Water:     c.Masks.Water,
			Buildable: c.Masks.Buildable,
			Land:      c.Masks.Land,
		}
	}

	corridors, err := bsp.ParseCorridorLogic(c.Layout.Corridors)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	v.Layout = bsp.Config{
		Width:                c.Layout.Width,
		Height:               c.Layout.Height,
		MinRoomSize:          c.Layout.MinRoomSize,
		MaxRoomSize:          c.Layout.MaxRoomSize,
		MinLeafSize:          c.Layout.MinLeafSize,
		Corridors:            corridors,
		ForbidMultiTierRooms: c.Layout.ForbidMultiTierRooms,
		EnemiesPerRoom:       c.Layout.EnemiesPerRoom,
		MaskedCorridors:      c.Layout.MaskedCorridors,
	}

	veg, err := c.Vegetation.toVillage()
	if err != nil {
		return v, err
	}
	v.Vegetation = veg

	v.Houses = village.HouseConfig{
		Enabled:         c.Houses.Enabled,
		Margin:          c.Houses.Margin,
		FillProbability: c.Houses.FillProbability,
		YOffset:         c.Houses.YOffset,
		Jitter:          c.Houses.Jitter,
	}

	return v, nil
}

func (c *VegetationConfig) toVillage() (village.VegetationConfig, error) {
	mode, err := village.ParseSpawnMode(c.Mode)
	if err != nil {
		return village.VegetationConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	preset, err := lsystem.PresetByName(c.Preset)
	if err != nil {
		return village.VegetationConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Axiom != "" {
		preset.Axiom = c.Axiom
	}
	if len(c.Rules) > 0 {
		rules := make([]lsystem.Rule, 0, len(c.Rules))
		for symbol, productions := range c.Rules {
			r, size := utf8.DecodeRuneInString(symbol)
			if symbol == "" || size != len(symbol) {
				return village.VegetationConfig{}, fmt.Errorf("%w: rule symbol %q must be a single character", ErrInvalidConfig, symbol)
			}
			rules = append(rules, lsystem.Rule{Symbol: r, Productions: productions})
		}
		preset.Rules = rules
	}
	if c.Angle > 0 {
		preset.Angle = c.Angle
	}
	if c.Step > 0 {
		preset.Step = c.Step
	}
	if c.ThreeD != nil {
		preset.ThreeD = *c.ThreeD
	}

	return village.VegetationConfig{
		Enabled:     c.Enabled,
		Mode:        mode,
		PerRoom:     c.PerRoom,
		RingMargin:  c.RingMargin,
		GlobalCount: c.GlobalCount,
		AvoidWater:  c.AvoidWater,
		AvoidRooms:  c.AvoidRooms,
		Jitter:      c.Jitter,
		BaseYOffset: c.BaseYOffset,
		Grammar:     preset,
		Iterations:  preset.Iterations(c.Iterations),
	}, nil
}
