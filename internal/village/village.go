// Package village runs the full level pipeline: tiered terrain, masks, the
// BSP layout, water tiles, vegetation and houses.
package village

import (
	"math/rand"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/logger"
	"github.com/lawnchairsociety/tiergen/internal/terrain"
	"github.com/lawnchairsociety/tiergen/internal/turtle"
)

// Placement is an object anchored to a grid cell
type Placement struct {
	Row, Col int
	Position turtle.Vec3
}

// Tree is a grown L-system tree
type Tree struct {
	Placement
	Symbols string
	Drawing *turtle.Drawing
}

// Scene is everything one pipeline run produces
type Scene struct {
	Seed    int64 // Effective seed, also when RandomizeSeed was set
	Config  Config
	Terrain *terrain.Terrain
	Tiers   [][]int
	Masks   terrain.Masks
	Layout  *bsp.Layout

	WaterTiles []Placement
	Trees      []Tree
	Houses     []Placement
}

// Heights returns the normalized height grid
func (s *Scene) Heights() [][]float64 {
	if s.Terrain == nil {
		return nil
	}
	return s.Terrain.Field.Normalized()
}

// WorldY returns the height objects on a cell stand on. Flat uses the tier
// plateau, otherwise the smoothed surface. Without terrain only the floor
// offset is returned.
func (s *Scene) WorldY(row, col int, flat bool) float64 {
	if s.Terrain == nil {
		return s.Config.FloorYOffset
	}
	return s.Terrain.WorldYAt(row, col, flat) + s.Config.FloorYOffset
}

// inRoom reports whether a cell lies inside any room
func (s *Scene) inRoom(row, col int) bool {
	for _, r := range s.Layout.Rooms {
		if r.Contains(col, row) {
			return true
		}
	}
	return false
}

// Generate runs the pipeline. A given config and seed always yield the same scene.
func Generate(cfg Config) *Scene {
	cfg.normalize()

	seed := cfg.Seed
	if cfg.RandomizeSeed {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	field := terrain.Generate(cfg.Noise, seed)
	if cfg.Shaping.Enabled() {
		field.Shape(cfg.Shaping)
	}

	set := terrain.DefaultMaskSet(cfg.Tiers.Count)
	if cfg.Masks != nil {
		set = *cfg.Masks
	}

	s := &Scene{
		Seed:    seed,
		Config:  cfg,
		Terrain: &terrain.Terrain{Field: field, Tiers: cfg.Tiers},
		Tiers:   terrain.TierGrid(field, cfg.Tiers),
		Masks:   terrain.BuildMasks(field, cfg.Tiers, set),
	}

	s.Layout = bsp.NewGenerator(cfg.Layout, rng).Generate(bsp.Constraints{
		Buildable: s.Masks.Buildable,
		Tiers:     s.Terrain,
	})

	s.WaterTiles = s.waterTiles()
	if cfg.Vegetation.Enabled {
		s.Trees = s.plantTrees(rng)
	}
	if cfg.Houses.Enabled {
		s.Houses = s.buildHouses(rng)
	}

	logger.Info("scene generated",
		"seed", seed,
		"rooms", len(s.Layout.Rooms),
		"corridors", len(s.Layout.Corridors),
		"water_tiles", len(s.WaterTiles),
		"trees", len(s.Trees),
		"houses", len(s.Houses))

	return s
}

// waterTiles emits one tile per water cell shared by the mask and the layout grid
func (s *Scene) waterTiles() []Placement {
	mask := s.Masks.Water
	rows := min(len(mask), s.Layout.Height)
	cell := s.Config.CellSize
	y := s.Terrain.Tiers.FlatY(0) + s.Config.WaterYOffset

	var tiles []Placement
	for row := 0; row < rows; row++ {
		cols := min(len(mask[row]), s.Layout.Width)
		for col := 0; col < cols; col++ {
			if !mask[row][col] {
				continue
			}
			tiles = append(tiles, Placement{
				Row:      row,
				Col:      col,
				Position: turtle.Vec3{X: float64(col) * cell, Y: y, Z: float64(row) * cell},
			})
		}
	}
	return tiles
}

// jitter returns a uniform offset in [-j, j)
func jitter(rng *rand.Rand, j float64) float64 {
	if j <= 0 {
		return 0
	}
	return rng.Float64()*2*j - j
}
