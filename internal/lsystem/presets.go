package lsystem

import "fmt"

// Preset bundles a grammar with the turtle settings it is drawn with
type Preset struct {
	Name          string
	Axiom         string
	Rules         []Rule
	Angle         float64 // Degrees
	Step          float64
	ThreeD        bool
	MinIterations int
}

// Grammar builds a fresh grammar for the preset
func (p Preset) Grammar(seed int64) *Grammar {
	return NewGrammar(p.Axiom, seed, p.Rules...)
}

// Iterations raises n to the preset minimum
func (p Preset) Iterations(n int) int {
	return max(n, p.MinIterations)
}

// Koch is the 2D Koch curve
func Koch() Preset {
	return Preset{
		Name:          "koch",
		Axiom:         "F",
		Rules:         []Rule{{Symbol: 'F', Productions: []string{"F+F--F+F"}}},
		Angle:         60,
		Step:          0.2,
		MinIterations: 1,
	}
}

// BracketedPlant is the classic 2D bracketed plant
func BracketedPlant() Preset {
	return Preset{
		Name:  "plant",
		Axiom: "X",
		Rules: []Rule{
			{Symbol: 'X', Productions: []string{"F-[[X]+X]+F[+FX]-X"}},
			{Symbol: 'F', Productions: []string{"FF"}},
		},
		Angle:         25,
		Step:          0.15,
		MinIterations: 4,
	}
}

// Tree3D branches in three dimensions and is used for vegetation
func Tree3D() Preset {
	return Preset{
		Name:  "tree3d",
		Axiom: "X",
		Rules: []Rule{
			{Symbol: 'X', Productions: []string{"F[+X][-X]&X"}},
			{Symbol: 'F', Productions: []string{"FF"}},
		},
		Angle:         22.5,
		Step:          0.25,
		ThreeD:        true,
		MinIterations: 3,
	}
}

// PresetByName looks up a preset by its name
func PresetByName(name string) (Preset, error) {
	switch name {
	case "koch":
		return Koch(), nil
	case "plant":
		return BracketedPlant(), nil
	case "", "tree3d":
		return Tree3D(), nil
	default:
		return Preset{}, fmt.Errorf("unknown l-system preset %q", name)
	}
}
