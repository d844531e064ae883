package terrain

import (
	"fmt"
	"math"
)

// PlateauMode flattens a band of normalized heights
type PlateauMode int

const (
	PlateauNone             PlateauMode = iota
	PlateauClampToLevel                 // Heights in the band become PlateauLevel
	PlateauReduceMultiplier             // Heights in the band are pulled toward PlateauLevel
)

// String returns the string representation of a PlateauMode
func (m PlateauMode) String() string {
	switch m {
	case PlateauNone:
		return "none"
	case PlateauClampToLevel:
		return "clamp"
	case PlateauReduceMultiplier:
		return "reduce"
	default:
		return "unknown"
	}
}

// ParsePlateauMode converts a plateau mode name to a PlateauMode
func ParsePlateauMode(s string) (PlateauMode, error) {
	switch s {
	case "", "none":
		return PlateauNone, nil
	case "clamp":
		return PlateauClampToLevel, nil
	case "reduce":
		return PlateauReduceMultiplier, nil
	default:
		return PlateauNone, fmt.Errorf("unknown plateau mode %q", s)
	}
}

// Shaping reshapes normalized heights before they are quantized
type Shaping struct {
	Mode          PlateauMode
	PlateauMin    float64 // Lower bound of the plateau band
	PlateauMax    float64 // Upper bound of the plateau band
	PlateauLevel  float64 // Target level inside the band
	PlateauFactor float64 // Relief kept by PlateauReduceMultiplier (0 = flat, 1 = untouched)
	TerraceSteps  int     // Extra quantization steps, 0 or 1 disables
}

// Enabled reports whether Apply changes anything
func (s Shaping) Enabled() bool {
	return s.Mode != PlateauNone || s.TerraceSteps > 1
}

// Apply maps a normalized height through the plateau and terrace stages
func (s Shaping) Apply(h01 float64) float64 {
	h := clamp01(h01)

	if s.Mode != PlateauNone && h >= s.PlateauMin && h <= s.PlateauMax {
		level := clamp01(s.PlateauLevel)
		switch s.Mode {
		case PlateauClampToLevel:
			h = level
		case PlateauReduceMultiplier:
			h = lerp(h, level, 1-clamp01(s.PlateauFactor))
		}
	}

	if s.TerraceSteps > 1 {
		k := float64(s.TerraceSteps)
		h = math.Floor(h*k) / k
	}
	return h
}

// Shape rewrites the field in place so that Height01 returns shaped values.
// The range is reset to [0,1] since the raw values are now normalized.
func (f *HeightField) Shape(s Shaping) {
	if !s.Enabled() {
		return
	}
	for z, row := range f.Raw {
		for x := range row {
			f.Raw[z][x] = s.Apply(f.Height01(z, x))
		}
	}
	f.Min, f.Max = 0, 1
}
