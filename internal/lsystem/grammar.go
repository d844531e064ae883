// Package lsystem rewrites symbol strings with deterministic or stochastic
// production rules.
package lsystem

import (
	"math/rand"
	"strings"
)

// Rule maps a symbol to one or more productions. Several productions make the
// rule stochastic.
type Rule struct {
	Symbol      rune
	Productions []string
}

// Grammar is an L-system definition with a lazily built rule table
type Grammar struct {
	Axiom string
	Seed  int64

	// KeepStream lets the random stream advance across Generate calls instead
	// of restarting from Seed on every call.
	KeepStream bool

	// MaxLength stops rewriting once the output grows past this many bytes (0 = unlimited)
	MaxLength int

	rules []Rule
	table map[rune][]string
	dirty bool
	rng   *rand.Rand
}

// NewGrammar creates a grammar from an axiom and rule list
func NewGrammar(axiom string, seed int64, rules ...Rule) *Grammar {
	g := &Grammar{Axiom: axiom, Seed: seed}
	g.SetRules(rules)
	return g
}

// SetRules replaces the rule list
func (g *Grammar) SetRules(rules []Rule) {
	g.rules = append([]Rule(nil), rules...)
	g.MarkDirty()
}

// AddRule appends a rule. Productions for a symbol already present are merged.
func (g *Grammar) AddRule(symbol rune, productions ...string) {
	g.rules = append(g.rules, Rule{Symbol: symbol, Productions: productions})
	g.MarkDirty()
}

// Rules returns a copy of the rule list
func (g *Grammar) Rules() []Rule {
	return append([]Rule(nil), g.rules...)
}

// MarkDirty forces the rule table to be rebuilt on the next Generate
func (g *Grammar) MarkDirty() {
	g.dirty = true
}

// buildTable merges the rule list into a symbol lookup, dropping blank productions
func (g *Grammar) buildTable() {
	g.table = make(map[rune][]string, len(g.rules))
	for _, r := range g.rules {
		list := g.table[r.Symbol]
		for _, p := range r.Productions {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		g.table[r.Symbol] = list
	}
	g.dirty = false
}

// Generate rewrites the axiom for the given number of iterations
func (g *Grammar) Generate(iterations int) string {
	if g.dirty || g.table == nil {
		g.buildTable()
	}
	if g.rng == nil || !g.KeepStream {
		g.rng = rand.New(rand.NewSource(g.Seed))
	}

	current := g.Axiom
	for i := 0; i < iterations; i++ {
		if g.MaxLength > 0 && len(current) > g.MaxLength {
			break
		}
		current = g.rewrite(current)
	}
	return current
}

// rewrite applies one generation of the rules
func (g *Grammar) rewrite(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, c := range s {
		list := g.table[c]
		switch len(list) {
		case 0:
			sb.WriteRune(c)
		case 1:
			sb.WriteString(list[0])
		default:
			sb.WriteString(list[g.rng.Intn(len(list))])
		}
	}
	return sb.String()
}

// Generate rewrites an axiom with a one-off grammar seeded with seed
func Generate(axiom string, rules map[rune][]string, iterations int, seed int64) string {
	g := NewGrammar(axiom, seed)
	for symbol, productions := range rules {
		g.AddRule(symbol, productions...)
	}
	return g.Generate(iterations)
}
