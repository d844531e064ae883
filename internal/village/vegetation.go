package village

import (
	"math/rand"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/logger"
	"github.com/lawnchairsociety/tiergen/internal/turtle"
)

const (
	perRoomBudget = 500   // Draws per room in PerRoom mode
	globalBudget  = 10000 // Draws in GlobalScatter mode
)

// plantTrees scatters trees and grows each one from the configured grammar
func (s *Scene) plantTrees(rng *rand.Rand) []Tree {
	v := s.Config.Vegetation

	// One grammar per scene; the stream advances so stochastic rules vary per tree
	grammar := v.Grammar.Grammar(rng.Int63())
	grammar.KeepStream = true

	interp := turtle.Interpreter{
		Step:   v.Grammar.Step,
		Angle:  v.Grammar.Angle,
		ThreeD: v.Grammar.ThreeD,
	}

	var cells []bsp.Cell
	switch v.Mode {
	case GlobalScatter:
		cells = s.scatterCells(rng)
	default:
		cells = s.ringCells(rng)
	}

	trees := make([]Tree, 0, len(cells))
	for _, c := range cells {
		p := s.cellPlacement(c.Y, c.X, v.BaseYOffset, v.Jitter, rng)
		symbols := grammar.Generate(v.Iterations)
		trees = append(trees, Tree{
			Placement: p,
			Symbols:   symbols,
			Drawing:   interp.Run(symbols, turtle.Upright(p.Position)),
		})
	}

	logger.Debug("vegetation placed", "mode", v.Mode.String(), "trees", len(trees))
	return trees
}

// ringCells picks up to PerRoom cells from the ring around every room
func (s *Scene) ringCells(rng *rand.Rand) []bsp.Cell {
	v := s.Config.Vegetation
	var out []bsp.Cell
	for _, r := range s.Layout.Rooms {
		ring := s.ring(r, v.RingMargin)
		placed := 0
		for budget := perRoomBudget; placed < v.PerRoom && budget > 0 && len(ring) > 0; budget-- {
			i := rng.Intn(len(ring))
			c := ring[i]
			ring = append(ring[:i], ring[i+1:]...)
			if !s.treeAllowed(c.Y, c.X) {
				continue
			}
			out = append(out, c)
			placed++
		}
	}
	return out
}

// ring lists the in-bounds cells of the rectangle margin cells outside a room
func (s *Scene) ring(r *bsp.Room, margin int) []bsp.Cell {
	y0, y1 := r.Y-margin, r.Y+r.H+margin-1
	x0, x1 := r.X-margin, r.X+r.W+margin-1

	var cells []bsp.Cell
	add := func(x, y int) {
		if s.Layout.Grid.InBounds(x, y) {
			cells = append(cells, bsp.Cell{X: x, Y: y})
		}
	}
	for x := x0; x <= x1; x++ {
		add(x, y0)
		if y1 != y0 {
			add(x, y1)
		}
	}
	for y := y0 + 1; y <= y1-1; y++ {
		add(x0, y)
		if x1 != x0 {
			add(x1, y)
		}
	}
	return cells
}

// scatterCells draws random cells over the area shared by the terrain and the layout
func (s *Scene) scatterCells(rng *rand.Rand) []bsp.Cell {
	v := s.Config.Vegetation
	rows := min(s.Terrain.Field.Rows(), s.Layout.Height)
	cols := min(s.Terrain.Field.Cols(), s.Layout.Width)
	if rows <= 0 || cols <= 0 {
		return nil
	}

	var out []bsp.Cell
	for budget := globalBudget; len(out) < v.GlobalCount && budget > 0; budget-- {
		row := rng.Intn(rows)
		col := rng.Intn(cols)
		if !s.treeAllowed(row, col) {
			continue
		}
		out = append(out, bsp.Cell{X: col, Y: row})
	}
	return out
}

// treeAllowed applies the water and room filters
func (s *Scene) treeAllowed(row, col int) bool {
	if !s.Layout.Grid.InBounds(col, row) {
		return false
	}
	v := s.Config.Vegetation
	if v.AvoidWater && s.Masks.Water.At(row, col) {
		return false
	}
	if v.AvoidRooms && s.inRoom(row, col) {
		return false
	}
	return true
}

// cellPlacement centers an object on a cell at the cell's flat tier height
func (s *Scene) cellPlacement(row, col int, yOffset, j float64, rng *rand.Rand) Placement {
	cell := s.Config.CellSize
	pos := turtle.Vec3{
		X: (float64(col) + 0.5) * cell,
		Y: s.Terrain.WorldYAt(row, col, true) + yOffset,
		Z: (float64(row) + 0.5) * cell,
	}
	pos.X += jitter(rng, j)
	pos.Z += jitter(rng, j)
	return Placement{Row: row, Col: col, Position: pos}
}
