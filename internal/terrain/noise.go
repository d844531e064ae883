package terrain

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseBasis selects the coherent noise function sampled by each octave
type NoiseBasis int

const (
	BasisSimplex NoiseBasis = iota // OpenSimplex, normalized to [0,1]
	BasisPerlin                    // Classic Perlin, remapped to [0,1]
)

// String returns the string representation of a NoiseBasis
func (b NoiseBasis) String() string {
	switch b {
	case BasisSimplex:
		return "simplex"
	case BasisPerlin:
		return "perlin"
	default:
		return "unknown"
	}
}

// ParseNoiseBasis converts a basis name to a NoiseBasis
func ParseNoiseBasis(s string) (NoiseBasis, error) {
	switch s {
	case "", "simplex":
		return BasisSimplex, nil
	case "perlin":
		return BasisPerlin, nil
	default:
		return BasisSimplex, fmt.Errorf("unknown noise basis %q", s)
	}
}

// Octave offsets are drawn from [-offsetRange, offsetRange)
const offsetRange = 100000

// Vec2 is a 2D offset in noise space
type Vec2 struct {
	X, Y float64
}

// NoiseParams contains the parameters of a height field
type NoiseParams struct {
	Width       int     // Cells along X (the field has Width+1 columns)
	Depth       int     // Cells along Z (the field has Depth+1 rows)
	Scale       float64 // Larger values zoom into the noise
	Octaves     int     // Number of fractal layers
	Lacunarity  float64 // Frequency multiplier per octave
	Persistence float64 // Amplitude multiplier per octave
	Offset      Vec2    // Global offset added to every octave
	Basis       NoiseBasis
}

// DefaultNoiseParams returns reasonable defaults for a height field
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Width:       200,
		Depth:       200,
		Scale:       50,
		Octaves:     4,
		Lacunarity:  2,
		Persistence: 0.5,
		Basis:       BasisSimplex,
	}
}

// Normalize clamps the parameters into their supported ranges
func (p *NoiseParams) Normalize() {
	if p.Width < 1 {
		p.Width = 1
	}
	if p.Depth < 1 {
		p.Depth = 1
	}
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.Octaves > 8 {
		p.Octaves = 8
	}
	if !(p.Scale >= 0.001) {
		p.Scale = 0.001
	}
	if !(p.Lacunarity >= 0.01) {
		p.Lacunarity = 0.01
	}
	p.Persistence = clamp01(p.Persistence)
}

// sampler returns a coherent noise function with output in [0,1]
func (b NoiseBasis) sampler(seed int64) func(x, y float64) float64 {
	switch b {
	case BasisPerlin:
		p := perlin.NewPerlin(2, 2, 1, seed)
		return func(x, y float64) float64 {
			return clamp01((p.Noise2D(x, y) + 1) * 0.5)
		}
	default:
		n := opensimplex.NewNormalized(seed)
		return n.Eval2
	}
}

// HeightField holds raw fractal noise per grid vertex plus the range seen while sampling.
// Rows run along Z, columns along X.
type HeightField struct {
	Raw      [][]float64
	Min, Max float64
}

// Generate samples a height field. Identical seeds and parameters produce identical fields.
func Generate(p NoiseParams, seed int64) *HeightField {
	p.Normalize()

	prng := rand.New(rand.NewSource(seed))
	offsets := make([]Vec2, p.Octaves)
	for i := range offsets {
		offsets[i] = Vec2{
			X: float64(prng.Intn(2*offsetRange)-offsetRange) + p.Offset.X,
			Y: float64(prng.Intn(2*offsetRange)-offsetRange) + p.Offset.Y,
		}
	}

	noise := p.Basis.sampler(seed)
	rows, cols := p.Depth+1, p.Width+1

	field := &HeightField{
		Raw: make([][]float64, rows),
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}

	// First pass: raw values and running range. Normalization needs the
	// global range, so it is only possible once the whole grid is sampled.
	for z := 0; z < rows; z++ {
		row := make([]float64, cols)
		for x := 0; x < cols; x++ {
			amplitude := 1.0
			frequency := 1.0
			height := 0.0

			for o := 0; o < p.Octaves; o++ {
				sx := float64(x)/p.Scale*frequency + offsets[o].X
				sz := float64(z)/p.Scale*frequency + offsets[o].Y
				height += amplitude * (noise(sx, sz)*2 - 1)

				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}

			row[x] = height
			field.Min = math.Min(field.Min, height)
			field.Max = math.Max(field.Max, height)
		}
		field.Raw[z] = row
	}

	return field
}

// Rows returns the number of rows (Depth+1)
func (f *HeightField) Rows() int {
	return len(f.Raw)
}

// Cols returns the number of columns (Width+1)
func (f *HeightField) Cols() int {
	if len(f.Raw) == 0 {
		return 0
	}
	return len(f.Raw[0])
}

// Height01 returns the normalized height of a cell. Indices are clamped to the field.
func (f *HeightField) Height01(row, col int) float64 {
	if f.Rows() == 0 || f.Cols() == 0 {
		return 0
	}
	row = clampInt(row, 0, f.Rows()-1)
	col = clampInt(col, 0, f.Cols()-1)
	return inverseLerp(f.Min, f.Max, f.Raw[row][col])
}

// Normalized returns the second pass: every raw value mapped into [0,1]
func (f *HeightField) Normalized() [][]float64 {
	out := make([][]float64, f.Rows())
	for z, row := range f.Raw {
		out[z] = make([]float64, len(row))
		for x, v := range row {
			out[z][x] = inverseLerp(f.Min, f.Max, v)
		}
	}
	return out
}

func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return clamp01((v - a) / (b - a))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
