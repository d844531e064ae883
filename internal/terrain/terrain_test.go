package terrain

import (
	"math"
	"testing"
)

func smallParams() NoiseParams {
	p := DefaultNoiseParams()
	p.Width = 32
	p.Depth = 24
	p.Scale = 12
	return p
}

func TestGenerateDeterminism(t *testing.T) {
	for _, basis := range []NoiseBasis{BasisSimplex, BasisPerlin} {
		t.Run(basis.String(), func(t *testing.T) {
			p := smallParams()
			p.Basis = basis

			a := Generate(p, 1234)
			b := Generate(p, 1234)

			if a.Min != b.Min || a.Max != b.Max {
				t.Fatalf("range differs: [%v,%v] vs [%v,%v]", a.Min, a.Max, b.Min, b.Max)
			}
			for z := range a.Raw {
				for x := range a.Raw[z] {
					if math.Float64bits(a.Raw[z][x]) != math.Float64bits(b.Raw[z][x]) {
						t.Fatalf("Raw[%d][%d] = %v vs %v", z, x, a.Raw[z][x], b.Raw[z][x])
					}
				}
			}
		})
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	p := smallParams()
	a := Generate(p, 1)
	b := Generate(p, 2)

	same := 0
	total := 0
	for z := range a.Raw {
		for x := range a.Raw[z] {
			total++
			if a.Raw[z][x] == b.Raw[z][x] {
				same++
			}
		}
	}
	if same > total/10 {
		t.Errorf("different seeds produced %d/%d identical values", same, total)
	}
}

func TestGenerateShapeAndRange(t *testing.T) {
	p := smallParams()
	f := Generate(p, 99)

	if f.Rows() != p.Depth+1 {
		t.Errorf("Rows() = %d, want %d", f.Rows(), p.Depth+1)
	}
	if f.Cols() != p.Width+1 {
		t.Errorf("Cols() = %d, want %d", f.Cols(), p.Width+1)
	}

	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, row := range f.Raw {
		for _, v := range row {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if min != f.Min || max != f.Max {
		t.Errorf("cached range [%v,%v], actual [%v,%v]", f.Min, f.Max, min, max)
	}

	norm := f.Normalized()
	sawZero, sawOne := false, false
	for _, row := range norm {
		for _, v := range row {
			if v < 0 || v > 1 {
				t.Fatalf("normalized value %v out of [0,1]", v)
			}
			sawZero = sawZero || v == 0
			sawOne = sawOne || v == 1
		}
	}
	if !sawZero || !sawOne {
		t.Errorf("normalized field should touch both ends, saw 0=%v 1=%v", sawZero, sawOne)
	}
}

func TestNoiseParamsNormalize(t *testing.T) {
	p := NoiseParams{Width: -3, Depth: 0, Scale: 0, Octaves: 20, Lacunarity: 0, Persistence: 3}
	p.Normalize()

	if p.Width != 1 || p.Depth != 1 {
		t.Errorf("size = %dx%d, want 1x1", p.Width, p.Depth)
	}
	if p.Octaves != 8 {
		t.Errorf("Octaves = %d, want 8", p.Octaves)
	}
	if p.Scale != 0.001 {
		t.Errorf("Scale = %v, want 0.001", p.Scale)
	}
	if p.Lacunarity != 0.01 {
		t.Errorf("Lacunarity = %v, want 0.01", p.Lacunarity)
	}
	if p.Persistence != 1 {
		t.Errorf("Persistence = %v, want 1", p.Persistence)
	}

	p = NoiseParams{Octaves: 0, Persistence: -1}
	p.Normalize()
	if p.Octaves != 1 {
		t.Errorf("Octaves = %d, want 1", p.Octaves)
	}
	if p.Persistence != 0 {
		t.Errorf("Persistence = %v, want 0", p.Persistence)
	}
}

func TestHeight01ClampsIndices(t *testing.T) {
	f := &HeightField{
		Raw: [][]float64{{0, 1}, {2, 4}},
		Min: 0,
		Max: 4,
	}
	tests := []struct {
		row, col int
		want     float64
	}{
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0.25},
		{-5, -5, 0},
		{9, 9, 1},
	}
	for _, tt := range tests {
		if got := f.Height01(tt.row, tt.col); got != tt.want {
			t.Errorf("Height01(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}

	flat := &HeightField{Raw: [][]float64{{3, 3}}, Min: 3, Max: 3}
	if got := flat.Height01(0, 0); got != 0 {
		t.Errorf("flat field Height01 = %v, want 0", got)
	}
}

func TestParseNoiseBasis(t *testing.T) {
	if b, err := ParseNoiseBasis("perlin"); err != nil || b != BasisPerlin {
		t.Errorf("ParseNoiseBasis(perlin) = %v, %v", b, err)
	}
	if b, err := ParseNoiseBasis(""); err != nil || b != BasisSimplex {
		t.Errorf("ParseNoiseBasis(\"\") = %v, %v", b, err)
	}
	if _, err := ParseNoiseBasis("worley"); err == nil {
		t.Error("expected error for unknown basis")
	}
}
