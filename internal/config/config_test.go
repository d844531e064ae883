package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/terrain"
	"github.com/lawnchairsociety/tiergen/internal/village"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Terrain.Basis != "simplex" {
		t.Errorf("expected simplex basis by default, got %q", cfg.Terrain.Basis)
	}
	if cfg.Tiers.Count != 3 || cfg.Tiers.Edge != "smooth" {
		t.Errorf("expected 3 smooth tiers, got %d %q", cfg.Tiers.Count, cfg.Tiers.Edge)
	}
	if cfg.Vegetation.Preset != "tree3d" {
		t.Errorf("expected tree3d preset, got %q", cfg.Vegetation.Preset)
	}
	if cfg.Masks != nil {
		t.Error("expected no mask override by default")
	}
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	got, err := DefaultConfig().ToVillage()
	if err != nil {
		t.Fatalf("ToVillage: %v", err)
	}
	want := village.DefaultConfig()

	if got.Noise != want.Noise {
		t.Errorf("Noise = %+v, want %+v", got.Noise, want.Noise)
	}
	if got.Tiers != want.Tiers {
		t.Errorf("Tiers = %+v, want %+v", got.Tiers, want.Tiers)
	}
	if got.Layout != want.Layout {
		t.Errorf("Layout = %+v, want %+v", got.Layout, want.Layout)
	}
	if got.Houses != want.Houses {
		t.Errorf("Houses = %+v, want %+v", got.Houses, want.Houses)
	}
	if got.Vegetation.Grammar.Step != want.Vegetation.Grammar.Step || got.Vegetation.Iterations != want.Vegetation.Iterations {
		t.Errorf("vegetation grammar differs: %+v", got.Vegetation)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/level.yaml")

	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}
	if cfg.Layout.Width != 80 {
		t.Errorf("expected default layout width 80, got %d", cfg.Layout.Width)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
seed: 1234
terrain:
  basis: perlin
  octaves: 6
tiers:
  count: 4
  edge: hard
masks:
  water: [0, 1]
  buildable: [2, 3]
layout:
  width: 30
  height: 24
  corridors: straight_axis
  forbid_multi_tier_rooms: false
vegetation:
  mode: global
  preset: plant
  rules:
    X: ["F[+X]F[-X]+X"]
  three_d: true
houses:
  enabled: true
  fill_probability: 0.5
logging:
  level: DEBUG
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Seed)
	}
	// Keys not in the file keep their defaults
	if cfg.Terrain.Scale != 50 {
		t.Errorf("expected default scale 50, got %v", cfg.Terrain.Scale)
	}

	v, err := cfg.ToVillage()
	if err != nil {
		t.Fatalf("ToVillage: %v", err)
	}
	if v.Noise.Basis != terrain.BasisPerlin || v.Noise.Octaves != 6 {
		t.Errorf("noise = %+v", v.Noise)
	}
	if v.Tiers.Count != 4 || v.Tiers.Edge != terrain.HardStep {
		t.Errorf("tiers = %+v", v.Tiers)
	}
	if v.Masks == nil || len(v.Masks.Water) != 2 || len(v.Masks.Buildable) != 2 {
		t.Errorf("masks = %+v", v.Masks)
	}
	if v.Layout.Corridors != bsp.StraightAxis || v.Layout.ForbidMultiTierRooms {
		t.Errorf("layout = %+v", v.Layout)
	}
	if v.Vegetation.Mode != village.GlobalScatter {
		t.Errorf("expected global scatter, got %v", v.Vegetation.Mode)
	}
	g := v.Vegetation.Grammar
	if g.Angle != 25 || !g.ThreeD || len(g.Rules) != 1 || g.Rules[0].Symbol != 'X' {
		t.Errorf("grammar = %+v", g)
	}
	if v.Vegetation.Iterations != 4 {
		t.Errorf("expected plant minimum of 4 iterations, got %d", v.Vegetation.Iterations)
	}
	if !v.Houses.Enabled || v.Houses.FillProbability != 0.5 {
		t.Errorf("houses = %+v", v.Houses)
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tiers.Count != 3 {
		t.Errorf("expected defaults for an empty file, got %+v", cfg.Tiers)
	}
}

func TestLoadConfig_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "seeed: 3\n"},
		{"unknown nested key", "terrain:\n  octave: 4\n"},
		{"bad basis", "terrain:\n  basis: worley\n"},
		{"bad corridor logic", "layout:\n  corridors: diagonal\n"},
		{"width type", "layout:\n  width: wide\n"},
		{"multi-char rule", "vegetation:\n  rules:\n    XY: [F]\n"},
		{"iterations too deep", "vegetation:\n  iterations: 9\n"},
		{"mask tier out of range", "masks:\n  water: [12]\n"},
		{"seed type", "seed: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if cfg == nil || cfg.Tiers.Count != 3 {
				t.Error("expected default config alongside the error")
			}
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "terrain: [unclosed\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("syntax errors should not be reported as schema violations")
	}
}

func TestToVillage_BadEnum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Corridors = "zigzag"
	if _, err := cfg.ToVillage(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Vegetation.Rules = map[string][]string{"": {"F"}}
	if _, err := cfg.ToVillage(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty rule symbol, got %v", err)
	}
}

func TestLoadedConfigGenerates(t *testing.T) {
	path := writeConfig(t, `
seed: 7
terrain:
  width: 32
  depth: 32
  scale: 16
layout:
  width: 32
  height: 32
  min_leaf_size: 6
  min_room_size: 3
  max_room_size: 5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	v, err := cfg.ToVillage()
	if err != nil {
		t.Fatalf("ToVillage: %v", err)
	}

	s := village.Generate(v)
	if s.Seed != 7 {
		t.Errorf("scene seed = %d, want 7", s.Seed)
	}
	if s.Layout.Width != 32 || s.Layout.Height != 32 {
		t.Errorf("layout = %dx%d, want 32x32", s.Layout.Width, s.Layout.Height)
	}
}

func TestShippedLevelConfig(t *testing.T) {
	cfg, err := LoadConfig("../../config/level.yaml")
	if err != nil {
		t.Fatalf("shipped config does not load: %v", err)
	}
	if cfg.Seed != 20240611 {
		t.Errorf("seed = %d, want 20240611", cfg.Seed)
	}
	if _, err := cfg.ToVillage(); err != nil {
		t.Errorf("ToVillage: %v", err)
	}
}

func TestLoadConfig_OutOfRangeValuesAreClamped(t *testing.T) {
	path := writeConfig(t, `
cell_size: -2
terrain:
  width: 0
  depth: -4
  octaves: 12
  scale: 0
  persistence: 3
tiers:
  count: 0
  smooth_range: 0.9
layout:
  width: 0
  height: 0
  enemies_per_room: -1
houses:
  fill_probability: 2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("out-of-range values should load, got %v", err)
	}
	if cfg.Terrain.Octaves != 12 || cfg.Layout.Width != 0 {
		t.Errorf("LoadConfig should keep values as written, got octaves %d width %d", cfg.Terrain.Octaves, cfg.Layout.Width)
	}

	v, err := cfg.ToVillage()
	if err != nil {
		t.Fatalf("ToVillage: %v", err)
	}
	s := village.Generate(v)

	got := s.Config
	if got.CellSize != 1 {
		t.Errorf("CellSize = %v, want 1", got.CellSize)
	}
	if got.Noise.Width != 1 || got.Noise.Depth != 1 {
		t.Errorf("noise size = %dx%d, want 1x1", got.Noise.Width, got.Noise.Depth)
	}
	if got.Noise.Octaves != 8 {
		t.Errorf("Octaves = %d, want 8", got.Noise.Octaves)
	}
	if got.Noise.Scale != 0.001 {
		t.Errorf("Scale = %v, want 0.001", got.Noise.Scale)
	}
	if got.Noise.Persistence != 1 {
		t.Errorf("Persistence = %v, want 1", got.Noise.Persistence)
	}
	if got.Tiers.Count != 1 {
		t.Errorf("tier Count = %d, want 1", got.Tiers.Count)
	}
	if got.Tiers.SmoothRange != 0.4 {
		t.Errorf("SmoothRange = %v, want 0.4", got.Tiers.SmoothRange)
	}
	if got.Layout.Width != 1 || got.Layout.Height != 1 || got.Layout.EnemiesPerRoom != 0 {
		t.Errorf("layout = %+v, want 1x1 with no enemies", got.Layout)
	}
	if got.Houses.FillProbability != 1 {
		t.Errorf("FillProbability = %v, want 1", got.Houses.FillProbability)
	}
	if s.Layout.Width != 1 || s.Layout.Height != 1 {
		t.Errorf("generated layout = %dx%d, want 1x1", s.Layout.Width, s.Layout.Height)
	}
}
