package bsp

import (
	"math/rand"

	"github.com/lawnchairsociety/tiergen/internal/logger"
)

const (
	// placementRetries bounds the attempts to reposition a rejected room
	placementRetries = 25
	// splitRatio forces a cut across the long side of elongated leaves
	splitRatio = 1.25
)

// TierLookup reports the terrain tier of a cell
type TierLookup interface {
	TierAt(row, col int) int
}

// Constraints are the optional terrain inputs of a layout. A nil mask allows
// every cell; a nil tier lookup disables the single tier rule.
type Constraints struct {
	Buildable [][]bool // Indexed [y][x]
	Tiers     TierLookup
}

// Config contains parameters for layout generation
type Config struct {
	Width                int
	Height               int
	MinRoomSize          int
	MaxRoomSize          int
	MinLeafSize          int
	Corridors            CorridorLogic
	ForbidMultiTierRooms bool
	EnemiesPerRoom       int
	MaskedCorridors      bool // Route corridors over buildable cells when possible
}

// DefaultConfig returns reasonable defaults for a layout
func DefaultConfig() Config {
	return Config{
		Width:                40,
		Height:               20,
		MinRoomSize:          4,
		MaxRoomSize:          8,
		MinLeafSize:          8,
		Corridors:            RandomOrder,
		ForbidMultiTierRooms: true,
		EnemiesPerRoom:       5,
	}
}

// Normalize clamps the config so generation always succeeds
func (c *Config) Normalize() {
	c.Width = max(c.Width, 1)
	c.Height = max(c.Height, 1)
	c.MinLeafSize = max(c.MinLeafSize, 1)
	c.MinRoomSize = max(c.MinRoomSize, 1)
	c.MaxRoomSize = max(c.MaxRoomSize, 1)
	if c.MaxRoomSize < c.MinRoomSize {
		c.MinRoomSize, c.MaxRoomSize = c.MaxRoomSize, c.MinRoomSize
	}
	// A terminal leaf is at least MinLeafSize wide and rooms keep a one cell margin
	if limit := max(c.MinLeafSize-2, 1); c.MinRoomSize > limit {
		c.MinRoomSize = limit
		c.MaxRoomSize = max(c.MaxRoomSize, c.MinRoomSize)
	}
	c.EnemiesPerRoom = max(c.EnemiesPerRoom, 0)
}

// Layout is the output of one generation pass
type Layout struct {
	Width, Height int
	Root          *Leaf
	Rooms         []*Room // Terminal leaf rooms in tree order
	Grid          *Grid
	Corridors     []Corridor
	Player        Cell
	Exit          Cell
	Enemies       []Cell
	HasPlayer     bool
	HasExit       bool
}

// Leaves returns every node of the tree in pre-order
func (l *Layout) Leaves() []*Leaf {
	var out []*Leaf
	l.Root.Walk(func(n *Leaf) {
		out = append(out, n)
	})
	return out
}

// Generator partitions a grid into rooms and corridors
type Generator struct {
	config Config
	rng    *rand.Rand

	grid   *Grid
	leaves []*Leaf
	rooms  []*Room
}

// NewGenerator creates a generator drawing from the given random source
func NewGenerator(config Config, rng *rand.Rand) *Generator {
	config.Normalize()
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Config returns the normalized configuration
func (g *Generator) Config() Config {
	return g.config
}

// Generate builds a fresh layout: split, place rooms, fill, connect, populate
func (g *Generator) Generate(c Constraints) *Layout {
	cfg := g.config
	root := NewLeaf(0, 0, cfg.Width, cfg.Height)

	g.grid = NewGrid(cfg.Width, cfg.Height)
	g.leaves = []*Leaf{root}
	g.rooms = nil

	g.splitAll()
	g.createRooms(root, c)
	g.fillRooms(root)

	layout := &Layout{
		Width:  cfg.Width,
		Height: cfg.Height,
		Root:   root,
		Rooms:  g.rooms,
		Grid:   g.grid,
	}

	layout.Corridors = g.connect(root, c, nil)
	g.populate(layout)

	logger.Debug("bsp layout generated",
		"leaves", len(g.leaves),
		"rooms", len(layout.Rooms),
		"corridors", len(layout.Corridors),
		"enemies", len(layout.Enemies))

	return layout
}

// splitAll keeps splitting terminal leaves until a full pass changes nothing
func (g *Generator) splitAll() {
	minLeaf := g.config.MinLeafSize
	for {
		var added []*Leaf
		for _, leaf := range g.leaves {
			if !leaf.IsTerminal() {
				continue
			}
			if leaf.W < 2*minLeaf && leaf.H < 2*minLeaf {
				continue
			}
			if g.splitLeaf(leaf) {
				added = append(added, leaf.Left, leaf.Right)
			}
		}
		if len(added) == 0 {
			return
		}
		g.leaves = append(g.leaves, added...)
	}
}

// splitLeaf cuts the leaf across its longer side
func (g *Generator) splitLeaf(leaf *Leaf) bool {
	if !leaf.IsTerminal() {
		return false
	}

	// splitH cuts the height (children stacked in y)
	splitH := leaf.W <= leaf.H
	if float64(leaf.W)/float64(leaf.H) >= splitRatio {
		splitH = false
	} else if float64(leaf.H)/float64(leaf.W) >= splitRatio {
		splitH = true
	}

	size := leaf.W
	if splitH {
		size = leaf.H
	}
	minLeaf := g.config.MinLeafSize
	if size < 2*minLeaf {
		return false
	}

	cut := g.rangeInt(minLeaf, size-minLeaf)
	if splitH {
		leaf.Left = NewLeaf(leaf.X, leaf.Y, leaf.W, cut)
		leaf.Right = NewLeaf(leaf.X, leaf.Y+cut, leaf.W, leaf.H-cut)
	} else {
		leaf.Left = NewLeaf(leaf.X, leaf.Y, cut, leaf.H)
		leaf.Right = NewLeaf(leaf.X+cut, leaf.Y, leaf.W-cut, leaf.H)
	}
	return true
}

// createRooms places at most one room in every terminal leaf
func (g *Generator) createRooms(leaf *Leaf, c Constraints) {
	if !leaf.IsTerminal() {
		if leaf.Left != nil {
			g.createRooms(leaf.Left, c)
		}
		if leaf.Right != nil {
			g.createRooms(leaf.Right, c)
		}
		return
	}

	cfg := g.config
	maxW := min(cfg.MaxRoomSize, leaf.W-2)
	maxH := min(cfg.MaxRoomSize, leaf.H-2)
	if cfg.MinRoomSize > maxW || cfg.MinRoomSize > maxH {
		return
	}

	w := g.rangeInt(cfg.MinRoomSize, maxW)
	h := g.rangeInt(cfg.MinRoomSize, maxH)

	for attempt := 0; attempt <= placementRetries; attempt++ {
		candidate := &Room{
			X: g.rangeInt(leaf.X+1, leaf.X+leaf.W-w-1),
			Y: g.rangeInt(leaf.Y+1, leaf.Y+leaf.H-h-1),
			W: w,
			H: h,
		}
		if g.roomAllowed(candidate, c) {
			leaf.Room = candidate
			return
		}
	}
	// Leaf stays roomless
}

// roomAllowed checks the buildable mask and the single tier rule
func (g *Generator) roomAllowed(r *Room, c Constraints) bool {
	if c.Buildable != nil {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if y < 0 || y >= len(c.Buildable) || x < 0 || x >= len(c.Buildable[y]) || !c.Buildable[y][x] {
					return false
				}
			}
		}
	}

	if g.config.ForbidMultiTierRooms && c.Tiers != nil {
		tier := c.Tiers.TierAt(r.Y, r.X)
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if c.Tiers.TierAt(y, x) != tier {
					return false
				}
			}
		}
	}

	return true
}

// fillRooms collects rooms in tree order and stamps them onto the grid
func (g *Generator) fillRooms(leaf *Leaf) {
	leaf.Walk(func(n *Leaf) {
		if !n.IsTerminal() || n.Room == nil {
			return
		}
		r := n.Room
		g.rooms = append(g.rooms, r)
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				g.grid.Set(x, y, TagRoomFloor)
			}
		}
	})
}

// connect joins one room of each subtree at every internal node
func (g *Generator) connect(leaf *Leaf, c Constraints, out []Corridor) []Corridor {
	if leaf == nil || leaf.Left == nil || leaf.Right == nil {
		return out
	}

	out = g.connect(leaf.Left, c, out)
	out = g.connect(leaf.Right, c, out)

	a := leaf.Left.FindRoom()
	b := leaf.Right.FindRoom()
	if a != nil && b != nil {
		out = append(out, g.connectRooms(a, b, c))
	}
	return out
}

// rangeInt returns a uniform int in [lo, hi], swapping inverted bounds
func (g *Generator) rangeInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
