package terrain

import (
	"math"
	"testing"
)

func TestTierIndex(t *testing.T) {
	m := TierMapper{Count: 3, Height: 4}
	tests := []struct {
		h01  float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.33, 0},
		{0.34, 1},
		{0.66, 1},
		{0.67, 2},
		{1, 2},
		{5, 2},
	}
	for _, tt := range tests {
		if got := m.TierIndex(tt.h01); got != tt.want {
			t.Errorf("TierIndex(%v) = %d, want %d", tt.h01, got, tt.want)
		}
	}
}

func TestTierIndexMonotonic(t *testing.T) {
	for count := 1; count <= MaxTiers; count++ {
		m := TierMapper{Count: count, Height: 1}
		prev := m.TierIndex(0)
		for i := 0; i <= 1000; i++ {
			idx := m.TierIndex(float64(i) / 1000)
			if idx < prev {
				t.Fatalf("count %d: TierIndex decreased at %v", count, float64(i)/1000)
			}
			if idx < 0 || idx > count-1 {
				t.Fatalf("count %d: TierIndex %d out of range", count, idx)
			}
			prev = idx
		}
	}
}

func TestFlatY(t *testing.T) {
	m := TierMapper{Count: 3, Height: 4}
	tests := []struct {
		idx  int
		want float64
	}{
		{0, 0}, {1, 4}, {2, 8}, {7, 8}, {-2, 0},
	}
	for _, tt := range tests {
		if got := m.FlatY(tt.idx); got != tt.want {
			t.Errorf("FlatY(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
}

func TestWorldYHardStepIsPiecewiseConstant(t *testing.T) {
	m := TierMapper{Count: 4, Height: 3, SmoothRange: 0.2}
	for i := 0; i <= 1000; i++ {
		h := float64(i) / 1000
		got := m.WorldYMode(h, HardStep)
		if got != m.FlatY(m.TierIndex(h)) {
			t.Fatalf("WorldYMode(%v, HardStep) = %v, want flat %v", h, got, m.FlatY(m.TierIndex(h)))
		}
	}
}

func TestWorldYSmoothStepIsContinuous(t *testing.T) {
	m := TierMapper{Count: 4, Height: 3, SmoothRange: 0.1}
	const eps = 1e-9

	for k := 1; k < m.Count; k++ {
		boundary := float64(k) / float64(m.Count)
		below := m.WorldYMode(boundary-eps, SmoothStep)
		above := m.WorldYMode(boundary, SmoothStep)
		if math.Abs(below-above) > 1e-6 {
			t.Errorf("boundary %d: jump from %v to %v", k, below, above)
		}
		mid := (m.FlatY(k-1) + m.FlatY(k)) / 2
		if math.Abs(above-mid) > 1e-9 {
			t.Errorf("boundary %d: WorldY = %v, want midpoint %v", k, above, mid)
		}
	}

	// A fine sweep never jumps by more than the ramp slope allows
	maxStep := m.Height / (2 * m.SmoothRange) * float64(m.Count) / 10000 * 1.01
	prev := m.WorldYMode(0, SmoothStep)
	for i := 1; i <= 10000; i++ {
		y := m.WorldYMode(float64(i)/10000, SmoothStep)
		if math.Abs(y-prev) > maxStep+1e-12 {
			t.Fatalf("discontinuity at %v: %v -> %v", float64(i)/10000, prev, y)
		}
		prev = y
	}
}

func TestWorldYSmoothStepKeepsPlateausFlat(t *testing.T) {
	m := TierMapper{Count: 3, Height: 4, SmoothRange: 0.1}
	// Middle of tier 1 is well outside any ramp
	if got := m.WorldYMode(0.5, SmoothStep); got != 4 {
		t.Errorf("WorldYMode(0.5) = %v, want 4", got)
	}
	// Bottom of tier 0 and top of the last tier have no neighbour to blend with
	if got := m.WorldYMode(0, SmoothStep); got != 0 {
		t.Errorf("WorldYMode(0) = %v, want 0", got)
	}
	if got := m.WorldYMode(1, SmoothStep); got != 8 {
		t.Errorf("WorldYMode(1) = %v, want 8", got)
	}
}

func TestTierMapperNormalize(t *testing.T) {
	m := TierMapper{Count: 0, Height: -2, SmoothRange: 0.9}
	m.Normalize()
	if m.Count != 1 || m.Height != 0 || m.SmoothRange != 0.4 {
		t.Errorf("Normalize() = %+v", m)
	}

	m = TierMapper{Count: 50, Height: 1, SmoothRange: 0}
	m.Normalize()
	if m.Count != MaxTiers || m.SmoothRange != 0.01 {
		t.Errorf("Normalize() = %+v", m)
	}
}

func TestTerrainLookups(t *testing.T) {
	f := &HeightField{Raw: [][]float64{{0, 0.5, 1}}, Min: 0, Max: 1}
	ter := &Terrain{Field: f, Tiers: TierMapper{Count: 2, Height: 10, Edge: SmoothStep, SmoothRange: 0.1}}

	if got := ter.TierAt(0, 0); got != 0 {
		t.Errorf("TierAt(0,0) = %d, want 0", got)
	}
	if got := ter.TierAt(0, 2); got != 1 {
		t.Errorf("TierAt(0,2) = %d, want 1", got)
	}
	// 0.5 sits exactly on the boundary: smoothed is mid ramp, flat is tier 1
	if got := ter.WorldYAt(0, 1, false); math.Abs(got-5) > 1e-9 {
		t.Errorf("WorldYAt(0,1,false) = %v, want 5", got)
	}
	if got := ter.WorldYAt(0, 1, true); got != 10 {
		t.Errorf("WorldYAt(0,1,true) = %v, want 10", got)
	}
}
