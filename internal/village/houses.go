package village

import (
	"math/rand"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
)

// buildHouses fills the inner cells of every room with houses
func (s *Scene) buildHouses(rng *rand.Rand) []Placement {
	h := s.Config.Houses
	var houses []Placement
	for _, r := range s.Layout.Rooms {
		if r.W-2*h.Margin <= 0 || r.H-2*h.Margin <= 0 {
			continue
		}
		for y := r.Y + h.Margin; y < r.Y+r.H-h.Margin; y++ {
			for x := r.X + h.Margin; x < r.X+r.W-h.Margin; x++ {
				// Player, exit and enemy cells stay free
				if s.Layout.Grid.At(x, y) != bsp.TagRoomFloor {
					continue
				}
				if rng.Float64() >= h.FillProbability {
					continue
				}
				houses = append(houses, s.cellPlacement(y, x, s.Config.FloorYOffset+h.YOffset, h.Jitter, rng))
			}
		}
	}
	return houses
}
