package terrain

import "math"

// Mask is a boolean grid with the same shape as the height field, indexed [row][col]
type Mask [][]bool

// At reports whether a cell is set. Cells outside the mask are never set.
func (m Mask) At(row, col int) bool {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return false
	}
	return m[row][col]
}

// Count returns the number of set cells
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// MaskForTiers marks every cell whose tier is in the allow-list
func MaskForTiers(f *HeightField, m TierMapper, allowed []int) Mask {
	allow := make(map[int]bool, len(allowed))
	for _, t := range allowed {
		allow[t] = true
	}

	mask := make(Mask, f.Rows())
	for z := range mask {
		mask[z] = make([]bool, f.Cols())
		for x := range mask[z] {
			mask[z][x] = allow[m.TierIndex(f.Height01(z, x))]
		}
	}
	return mask
}

// MaskSet holds the tier allow-lists of the three named masks.
// The lists are independent; keeping them disjoint is up to the caller.
type MaskSet struct {
	Water     []int
	Buildable []int
	Land      []int
}

// DefaultMaskSet returns the usual village split: the lowest tier is water,
// everything above it is buildable land. A single tier is buildable and land.
func DefaultMaskSet(tierCount int) MaskSet {
	set := MaskSet{Water: []int{0}}
	if tierCount <= 1 {
		set.Buildable = []int{0}
		set.Land = []int{0}
		return set
	}
	for i := 1; i < tierCount; i++ {
		set.Buildable = append(set.Buildable, i)
		set.Land = append(set.Land, i)
	}
	return set
}

// Masks are the derived water / buildable / land masks of one terrain
type Masks struct {
	Water     Mask
	Buildable Mask
	Land      Mask
}

// BuildMasks derives all three named masks. Call again whenever the tier count or height changes.
func BuildMasks(f *HeightField, m TierMapper, set MaskSet) Masks {
	return Masks{
		Water:     MaskForTiers(f, m, set.Water),
		Buildable: MaskForTiers(f, m, set.Buildable),
		Land:      MaskForTiers(f, m, set.Land),
	}
}

// ClassifySlopes builds masks from raw height thresholds instead of tiers.
// Cells below waterThreshold are water, the rest land. Plain cells are land
// cells inside [plainMin, plainMax] whose mean 4-neighbour height delta is at most maxSlope.
func ClassifySlopes(f *HeightField, waterThreshold, plainMin, plainMax, maxSlope float64) (water, plain, land Mask) {
	h01 := f.Normalized()
	rows, cols := f.Rows(), f.Cols()

	water = make(Mask, rows)
	plain = make(Mask, rows)
	land = make(Mask, rows)

	slope := func(z, x int) float64 {
		c := h01[z][x]
		acc, cnt := 0.0, 0
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			zz, xx := z+d[0], x+d[1]
			if zz < 0 || zz >= rows || xx < 0 || xx >= cols {
				continue
			}
			acc += math.Abs(h01[zz][xx] - c)
			cnt++
		}
		if cnt == 0 {
			return 0
		}
		return acc / float64(cnt)
	}

	for z := 0; z < rows; z++ {
		water[z] = make([]bool, cols)
		plain[z] = make([]bool, cols)
		land[z] = make([]bool, cols)
		for x := 0; x < cols; x++ {
			hv := h01[z][x]
			if hv < waterThreshold {
				water[z][x] = true
				continue
			}
			land[z][x] = true
			plain[z][x] = hv >= plainMin && hv <= plainMax && slope(z, x) <= maxSlope
		}
	}
	return water, plain, land
}
