package bsp

import "fmt"

// CorridorLogic decides the order of the horizontal and vertical legs of a corridor
type CorridorLogic int

const (
	RandomOrder     CorridorLogic = iota // 50/50 per connection
	HorizontalFirst                      // Horizontal leg, then vertical
	VerticalFirst                        // Vertical leg, then horizontal
	StraightAxis                         // Leg along the larger delta first
)

// String returns the string representation of a CorridorLogic
func (c CorridorLogic) String() string {
	switch c {
	case RandomOrder:
		return "random"
	case HorizontalFirst:
		return "horizontal_first"
	case VerticalFirst:
		return "vertical_first"
	case StraightAxis:
		return "straight_axis"
	default:
		return "unknown"
	}
}

// ParseCorridorLogic converts a corridor logic name to a CorridorLogic
func ParseCorridorLogic(s string) (CorridorLogic, error) {
	switch s {
	case "", "random":
		return RandomOrder, nil
	case "horizontal_first":
		return HorizontalFirst, nil
	case "vertical_first":
		return VerticalFirst, nil
	case "straight_axis":
		return StraightAxis, nil
	default:
		return RandomOrder, fmt.Errorf("unknown corridor logic %q", s)
	}
}

// Corridor records one connection made during the connect pass
type Corridor struct {
	From, To *Room
	Cells    []Cell // Every cell on the path, including cells inside rooms
	Masked   bool   // True if the path came from the mask-constrained search
}

// connectRooms joins two room centers and returns the corridor drawn
func (g *Generator) connectRooms(a, b *Room, c Constraints) Corridor {
	corridor := Corridor{From: a, To: b}

	if g.config.MaskedCorridors && c.Buildable != nil {
		if path := g.maskedPath(a.Center(), b.Center(), c.Buildable); path != nil {
			corridor.Cells = path
			corridor.Masked = true
			g.carve(path)
			return corridor
		}
	}

	corridor.Cells = g.lPath(a.Center(), b.Center())
	g.carve(corridor.Cells)
	return corridor
}

// lPath builds the two-leg corridor between two cells
func (g *Generator) lPath(from, to Cell) []Cell {
	horizontalFirst := true
	switch g.config.Corridors {
	case RandomOrder:
		horizontalFirst = g.rng.Intn(2) == 0
	case HorizontalFirst:
		horizontalFirst = true
	case VerticalFirst:
		horizontalFirst = false
	case StraightAxis:
		horizontalFirst = abs(from.X-to.X) >= abs(from.Y-to.Y)
	}

	var path []Cell
	if horizontalFirst {
		path = appendHLine(path, from.Y, from.X, to.X)
		path = appendVLine(path, to.X, from.Y, to.Y)
	} else {
		path = appendVLine(path, from.X, from.Y, to.Y)
		path = appendHLine(path, to.Y, from.X, to.X)
	}
	return path
}

func appendHLine(path []Cell, y, xa, xb int) []Cell {
	start, end := min(xa, xb), max(xa, xb)
	for x := start; x <= end; x++ {
		path = append(path, Cell{X: x, Y: y})
	}
	return path
}

func appendVLine(path []Cell, x, ya, yb int) []Cell {
	start, end := min(ya, yb), max(ya, yb)
	for y := start; y <= end; y++ {
		path = append(path, Cell{X: x, Y: y})
	}
	return path
}

// carve writes corridor floor onto the wall cells of a path. Room floors are left intact.
func (g *Generator) carve(path []Cell) {
	for _, c := range path {
		if g.grid.At(c.X, c.Y) == TagWall {
			g.grid.Set(c.X, c.Y, TagCorridorFloor)
		}
	}
}

var neighbors = [4]Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// maskedPath finds the shortest 4-connected path over buildable or room cells.
// Returns nil if the target cannot be reached.
func (g *Generator) maskedPath(from, to Cell, buildable [][]bool) []Cell {
	passable := func(x, y int) bool {
		if !g.grid.InBounds(x, y) {
			return false
		}
		if g.grid.At(x, y) == TagRoomFloor {
			return true
		}
		return y < len(buildable) && x < len(buildable[y]) && buildable[y][x]
	}

	if !passable(from.X, from.Y) || !passable(to.X, to.Y) {
		return nil
	}

	prev := make(map[Cell]Cell)
	visited := map[Cell]bool{from: true}
	queue := []Cell{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == to {
			var path []Cell
			for c := to; c != from; c = prev[c] {
				path = append(path, c)
			}
			path = append(path, from)
			// Reverse so the path runs from -> to
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range neighbors {
			next := Cell{X: current.X + d.X, Y: current.Y + d.Y}
			if visited[next] || !passable(next.X, next.Y) {
				continue
			}
			visited[next] = true
			prev[next] = current
			queue = append(queue, next)
		}
	}

	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
