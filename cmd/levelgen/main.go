package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/tiergen/internal/bsp"
	"github.com/lawnchairsociety/tiergen/internal/config"
	"github.com/lawnchairsociety/tiergen/internal/logger"
	"github.com/lawnchairsociety/tiergen/internal/village"
)

func main() {
	configPath := flag.String("config", "config/level.yaml", "Path to level config file")
	seed := flag.Int64("seed", 0, "Seed to generate (overrides the config seed when non-zero)")
	seeds := flag.String("seeds", "", "Seed range to generate (e.g., '1-10' or '5')")
	randomSeed := flag.Bool("random-seed", false, "Pick a random seed and print it")
	width := flag.Int("width", 0, "Override terrain and layout width")
	height := flag.Int("height", 0, "Override terrain depth and layout height")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	logConfig, err := logger.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	levelConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := levelConfig.ToVillage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applySize(&cfg, *width, *height)

	seedList := []int64{cfg.Seed}
	switch {
	case *randomSeed:
		cfg.RandomizeSeed = true
	case *seeds != "":
		start, end, err := parseSeedRange(*seeds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid seed range: %v\n", err)
			os.Exit(1)
		}
		seedList = seedList[:0]
		for s := start; s <= end; s++ {
			seedList = append(seedList, s)
		}
	case *seed != 0:
		seedList[0] = *seed
	}

	var output strings.Builder
	for _, s := range seedList {
		cfg.Seed = s
		renderScene(&output, village.Generate(cfg))
		output.WriteString("\n")
	}

	if *showLegend {
		output.WriteString(getLegend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

// applySize overrides the grid dimensions of both the terrain and the layout
func applySize(cfg *village.Config, width, height int) {
	if width > 0 {
		cfg.Noise.Width = width
		cfg.Layout.Width = width
	}
	if height > 0 {
		cfg.Noise.Depth = height
		cfg.Layout.Height = height
	}
}

// parseSeedRange parses a seed range string like "1-25" or "5"
func parseSeedRange(s string) (start, end int64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty seed range")
	}

	// A leading '-' belongs to a negative start seed
	if i := strings.Index(s[1:], "-"); i >= 0 {
		i++
		start, err = strconv.ParseInt(strings.TrimSpace(s[:i]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start seed: %w", err)
		}
		end, err = strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end seed: %w", err)
		}
	} else {
		start, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid seed: %w", err)
		}
		end = start
	}

	if end < start {
		return 0, 0, fmt.Errorf("end seed must be >= start seed")
	}
	return start, end, nil
}

func renderScene(output *strings.Builder, s *village.Scene) {
	l := s.Layout
	output.WriteString(fmt.Sprintf("Level (Seed: %d, %dx%d, %d tiers)\n", s.Seed, l.Width, l.Height, s.Config.Tiers.Count))
	output.WriteString(strings.Repeat("=", 60) + "\n")
	output.WriteString(fmt.Sprintf("Rooms: %d  Corridors: %d  Enemies: %d\n", len(l.Rooms), len(l.Corridors), len(l.Enemies)))
	output.WriteString(fmt.Sprintf("Water tiles: %d  Trees: %d (%d stroke points)  Houses: %d\n",
		len(s.WaterTiles), len(s.Trees), treePoints(s), len(s.Houses)))
	if l.HasPlayer {
		output.WriteString(fmt.Sprintf("Player: (%d,%d)", l.Player.X, l.Player.Y))
	} else {
		output.WriteString("Player: none")
	}
	if l.HasExit {
		output.WriteString(fmt.Sprintf("  Exit: (%d,%d)\n", l.Exit.X, l.Exit.Y))
	} else {
		output.WriteString("  Exit: none\n")
	}
	output.WriteString(strings.Repeat("-", 40) + "\n")

	for _, line := range renderRows(s) {
		output.WriteString(line)
		output.WriteString("\n")
	}
}

// treePoints sums the stroke points of every tree drawing
func treePoints(s *village.Scene) int {
	n := 0
	for _, t := range s.Trees {
		if t.Drawing != nil {
			n += t.Drawing.Points()
		}
	}
	return n
}

// renderRows overlays water, houses and trees on the wall cells of the tag grid
func renderRows(s *village.Scene) []string {
	text := strings.TrimSuffix(s.Layout.Grid.String(), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	rows := make([][]byte, len(lines))
	for i, line := range lines {
		rows[i] = []byte(line)
	}

	overlay := func(row, col int, b byte) {
		if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
			return
		}
		if rows[row][col] == byte(bsp.TagWall) {
			rows[row][col] = b
		}
	}
	for _, w := range s.WaterTiles {
		overlay(w.Row, w.Col, '~')
	}
	for _, t := range s.Trees {
		overlay(t.Row, t.Col, 'T')
	}

	for i, row := range rows {
		lines[i] = string(row)
	}
	// Houses stand on room floor, so they are drawn after the wall overlay
	for _, h := range s.Houses {
		if h.Row >= 0 && h.Row < len(rows) && h.Col >= 0 && h.Col < len(rows[h.Row]) &&
			rows[h.Row][h.Col] == byte(bsp.TagRoomFloor) {
			rows[h.Row][h.Col] = 'H'
			lines[h.Row] = string(rows[h.Row])
		}
	}
	return lines
}

func getLegend() string {
	return `
Legend:
  #   Wall
  r   Room floor
  .   Corridor
  P   Player start
  S   Exit
  E   Enemy
  ~   Water
  T   Tree
  H   House
`
}
