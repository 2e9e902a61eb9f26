// Command worldgen-stats generates a world headlessly and reports its
// composition: particle counts by kind, air percentage, and generation time.
// Useful when tuning spawn weights and depth intervals.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"time"

	"sandfall/internal/particle"
	"sandfall/internal/world"
)

func main() {
	width := flag.Int("width", 640, "map width in particle units")
	height := flag.Int("height", 640, "map height in particle units")
	seed := flag.Int64("seed", 1337, "generation seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel generation workers")
	ticks := flag.Int("ticks", 0, "simulation ticks to run after generation")
	flag.Parse()

	cfg := world.Config{
		Width:   *width,
		Height:  *height,
		Seed:    *seed,
		Workers: *workers,
		Rules:   particle.DefaultRules(),
	}

	start := time.Now()
	m, err := world.Generate(cfg)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	elapsed := time.Since(start)

	if *ticks > 0 {
		focus := world.Point{X: *width / 2, Y: *height / 2}
		simStart := time.Now()
		for i := 0; i < *ticks; i++ {
			m.Tick(focus)
		}
		fmt.Printf("Simulated %d ticks in %v\n", *ticks, time.Since(simStart))
	}

	counts := m.Composition()
	total := 0
	for _, n := range counts {
		total += n
	}
	cells := *width * *height
	air := cells - total

	fmt.Printf("Generated %dx%d world (seed %d) in %v\n", *width, *height, *seed, elapsed)
	fmt.Printf("Total cells: %d\n", cells)
	fmt.Printf("Particles:   %d\n", total)
	fmt.Printf("Air:         %d (%.2f%%)\n", air, pct(air, cells))

	type entry struct {
		kind  particle.Kind
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, entry{kind: k, count: n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	fmt.Println("Breakdown by kind:")
	for _, e := range entries {
		fmt.Printf("  %-10s %10d (%.2f%%)\n", e.kind, e.count, pct(e.count, cells))
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
