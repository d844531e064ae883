package bsp

import "sort"

// enemyAttemptFactor bounds enemy sampling to this many draws per requested enemy
const enemyAttemptFactor = 10

// populate places the player, the enemies and the exit
func (g *Generator) populate(layout *Layout) {
	rooms := layout.Rooms
	if len(rooms) == 0 {
		return
	}

	start := rooms[0]
	layout.Player = start.Center()
	layout.HasPlayer = true
	g.grid.Set(layout.Player.X, layout.Player.Y, TagPlayer)

	for _, room := range rooms[1:] {
		layout.Enemies = append(layout.Enemies, g.placeEnemies(room)...)
	}

	if exit, ok := g.placeExit(rooms); ok {
		layout.Exit = exit
		layout.HasExit = true
	}
}

// placeEnemies samples random room-floor cells inside a room
func (g *Generator) placeEnemies(room *Room) []Cell {
	want := g.config.EnemiesPerRoom
	if want == 0 {
		return nil
	}

	var placed []Cell
	for attempt := 0; attempt < want*enemyAttemptFactor && len(placed) < want; attempt++ {
		x := room.X + g.rng.Intn(room.W)
		y := room.Y + g.rng.Intn(room.H)
		if g.grid.At(x, y) != TagRoomFloor {
			continue
		}
		g.grid.Set(x, y, TagEnemy)
		placed = append(placed, Cell{X: x, Y: y})
	}
	return placed
}

// placeExit marks the exit in the room farthest from the player room. Rooms
// without a free floor cell are skipped in order of decreasing distance.
func (g *Generator) placeExit(rooms []*Room) (Cell, bool) {
	origin := rooms[0].Center()

	// Candidate rooms by Manhattan distance, farthest first. The player room comes last.
	order := make([]int, 0, len(rooms))
	for i := 1; i < len(rooms); i++ {
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return manhattan(rooms[order[a]].Center(), origin) > manhattan(rooms[order[b]].Center(), origin)
	})
	order = append(order, 0)

	for _, i := range order {
		if cell, ok := g.freeFloor(rooms[i]); ok {
			g.grid.Set(cell.X, cell.Y, TagExit)
			return cell, true
		}
	}
	return Cell{}, false
}

// freeFloor returns the room center if it is still bare floor, else the first
// bare floor cell of the room in row-major order
func (g *Generator) freeFloor(room *Room) (Cell, bool) {
	center := room.Center()
	if g.grid.At(center.X, center.Y) == TagRoomFloor {
		return center, true
	}
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			if g.grid.At(x, y) == TagRoomFloor {
				return Cell{X: x, Y: y}, true
			}
		}
	}
	return Cell{}, false
}

func manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}
