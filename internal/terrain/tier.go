package terrain

import (
	"fmt"
	"math"
)

// EdgeMode controls how world Y behaves at tier boundaries
type EdgeMode int

const (
	HardStep   EdgeMode = iota // Flat tier Y everywhere (a true staircase)
	SmoothStep                 // Linear ramp within SmoothRange of a boundary
)

// String returns the string representation of an EdgeMode
func (m EdgeMode) String() string {
	switch m {
	case HardStep:
		return "hard"
	case SmoothStep:
		return "smooth"
	default:
		return "unknown"
	}
}

// ParseEdgeMode converts an edge mode name to an EdgeMode
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "hard":
		return HardStep, nil
	case "", "smooth":
		return SmoothStep, nil
	default:
		return SmoothStep, fmt.Errorf("unknown edge mode %q", s)
	}
}

const (
	MaxTiers       = 10
	minSmoothRange = 0.01
	maxSmoothRange = 0.4
)

// TierMapper quantizes normalized heights into discrete tiers
type TierMapper struct {
	Count       int      // Number of tiers
	Height      float64  // World height between tiers
	Edge        EdgeMode // Default edge mode for WorldY
	SmoothRange float64  // Half width of a boundary ramp, as a fraction of one tier band
}

// DefaultTierMapper returns the default three tier setup
func DefaultTierMapper() TierMapper {
	return TierMapper{
		Count:       3,
		Height:      4,
		Edge:        SmoothStep,
		SmoothRange: 0.10,
	}
}

// Normalize clamps the mapper into its supported ranges
func (m *TierMapper) Normalize() {
	m.Count = clampInt(m.Count, 1, MaxTiers)
	if !(m.Height >= 0) {
		m.Height = 0
	}
	if !(m.SmoothRange >= minSmoothRange) {
		m.SmoothRange = minSmoothRange
	}
	if m.SmoothRange > maxSmoothRange {
		m.SmoothRange = maxSmoothRange
	}
}

func (m TierMapper) count() int {
	if m.Count < 1 {
		return 1
	}
	return m.Count
}

// TierIndex returns the tier of a normalized height, in [0, Count-1]
func (m TierMapper) TierIndex(h01 float64) int {
	n := m.count()
	idx := int(math.Floor(clamp01(h01) * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// FlatY returns the plateau height of a tier
func (m TierMapper) FlatY(tierIndex int) float64 {
	return float64(clampInt(tierIndex, 0, m.count()-1)) * m.Height
}

// WorldY returns the world height for a normalized height using the mapper's edge mode
func (m TierMapper) WorldY(h01 float64) float64 {
	return m.WorldYMode(h01, m.Edge)
}

// WorldYMode returns the world height for a normalized height.
// SmoothStep ramps linearly across [k-SmoothRange, k+SmoothRange] around every
// internal boundary k, reaching the midpoint of both plateaus exactly at k.
func (m TierMapper) WorldYMode(h01 float64, mode EdgeMode) float64 {
	idx := m.TierIndex(h01)
	if mode != SmoothStep {
		return m.FlatY(idx)
	}

	n := m.count()
	sr := m.SmoothRange
	if sr <= 0 {
		return m.FlatY(idx)
	}

	t := clamp01(h01) * float64(n)
	frac := t - float64(idx)

	switch {
	case frac < sr && idx > 0:
		// Upper half of the ramp into this tier
		k := float64(idx)
		blend := (t - (k - sr)) / (2 * sr)
		return lerp(m.FlatY(idx-1), m.FlatY(idx), blend)
	case frac > 1-sr && idx < n-1:
		// Lower half of the ramp into the next tier
		k := float64(idx + 1)
		blend := (t - (k - sr)) / (2 * sr)
		return lerp(m.FlatY(idx), m.FlatY(idx+1), blend)
	default:
		return m.FlatY(idx)
	}
}

// TierGrid returns the tier index of every cell of a field
func TierGrid(f *HeightField, m TierMapper) [][]int {
	out := make([][]int, f.Rows())
	for z := range out {
		out[z] = make([]int, f.Cols())
		for x := range out[z] {
			out[z][x] = m.TierIndex(f.Height01(z, x))
		}
	}
	return out
}

// Terrain pairs a height field with the mapper used to read it
type Terrain struct {
	Field *HeightField
	Tiers TierMapper
}

// TierAt returns the tier index of a cell
func (t *Terrain) TierAt(row, col int) int {
	return t.Tiers.TierIndex(t.Field.Height01(row, col))
}

// WorldYAt returns the world height of a cell. When flat is set the plateau
// height of the cell's tier is returned, which is what floors stand on.
func (t *Terrain) WorldYAt(row, col int, flat bool) float64 {
	h01 := t.Field.Height01(row, col)
	if flat {
		return t.Tiers.FlatY(t.Tiers.TierIndex(h01))
	}
	return t.Tiers.WorldY(h01)
}
