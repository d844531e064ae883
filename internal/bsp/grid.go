package bsp

import "strings"

// Tag identifies what occupies a grid cell
type Tag byte

const (
	TagWall          Tag = '#'
	TagRoomFloor     Tag = 'r'
	TagCorridorFloor Tag = '.'
	TagPlayer        Tag = 'P'
	TagExit          Tag = 'S'
	TagEnemy         Tag = 'E'
)

// String returns the string representation of a Tag
func (t Tag) String() string {
	switch t {
	case TagWall:
		return "wall"
	case TagRoomFloor:
		return "room"
	case TagCorridorFloor:
		return "corridor"
	case TagPlayer:
		return "player"
	case TagExit:
		return "exit"
	case TagEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Grid is the tagged cell map, indexed [y][x]
type Grid struct {
	Width, Height int
	cells         [][]Tag
}

// NewGrid creates a grid filled with walls
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([][]Tag, height),
	}
	for y := 0; y < height; y++ {
		g.cells[y] = make([]Tag, width)
		for x := 0; x < width; x++ {
			g.cells[y][x] = TagWall
		}
	}
	return g
}

// InBounds returns true if the cell is inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tag of a cell. Cells outside the grid read as walls.
func (g *Grid) At(x, y int) Tag {
	if !g.InBounds(x, y) {
		return TagWall
	}
	return g.cells[y][x]
}

// Set tags a cell. Cells outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tag) {
	if g.InBounds(x, y) {
		g.cells[y][x] = t
	}
}

// Walkable returns true for every tag except walls
func (g *Grid) Walkable(x, y int) bool {
	return g.At(x, y) != TagWall
}

// Count returns how many cells carry the tag
func (g *Grid) Count(t Tag) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == t {
				n++
			}
		}
	}
	return n
}

// Find returns the first cell with the tag in row-major order
func (g *Grid) Find(t Tag) (Cell, bool) {
	for y, row := range g.cells {
		for x, c := range row {
			if c == t {
				return Cell{X: x, Y: y}, true
			}
		}
	}
	return Cell{}, false
}

// String renders the grid one row per line, row 0 first
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for _, row := range g.cells {
		for _, c := range row {
			sb.WriteByte(byte(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
