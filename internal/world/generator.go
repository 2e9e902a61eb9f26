package world

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"sandfall/internal/particle"
	"sandfall/pkg/core"
)

// Surface shape constants: a sine ripple on top of a mostly-full map, leaving
// roughly the top 5% as open air.
const (
	surfaceBaseFraction = 0.95
	surfaceAmplitude    = 10.0
	surfaceFrequency    = 0.05
)

// surfaceHeights precomputes the deterministic per-column surface row.
func surfaceHeights(width, height int) []int {
	base := int(float64(height) * surfaceBaseFraction)
	heights := make([]int, width)
	for x := range heights {
		heights[x] = base + int(surfaceAmplitude*math.Sin(float64(x)*surfaceFrequency))
	}
	return heights
}

// placement is a single generated cell, produced into a worker-local buffer
// and merged into chunk storage after the join barrier.
type placement struct {
	pos     Point
	p       particle.Particle
	special bool
}

// Generate creates a new world with terrain: a deterministic surface height
// field, depth-matched common particles, and weighted special placements with
// ore veins.
//
// Columns are partitioned across a fixed worker pool. Workers never touch
// chunk storage; each fills a private placement buffer from its own seeded
// RNG stream, and a single coordinator merges the buffers after every worker
// has joined. A worker failure aborts generation.
func Generate(cfg Config) (*Map, error) {
	m := Empty(cfg)
	heights := surfaceHeights(cfg.Width, cfg.Height)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Width {
		workers = cfg.Width
	}
	workUnit := cfg.Width / workers
	if workUnit < 1 {
		workUnit = 1
	}

	buffers := make([][]placement, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * workUnit
		end := start + workUnit
		if w == workers-1 {
			end = cfg.Width
		}
		buf := &buffers[w]
		g.Go(func() error {
			rng := core.NewStreamRNG(cfg.Seed, uint64(start)+1)
			*buf = generateColumns(start, end, heights, cfg, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Commons first, never overwriting; then specials in worker order,
	// overwriting unconditionally (veins claim whatever terrain was there).
	for _, buf := range buffers {
		for _, pl := range buf {
			if pl.special {
				continue
			}
			if _, occupied := m.ParticleAt(pl.pos); !occupied {
				m.SetParticleAt(pl.pos, pl.p)
			}
		}
	}
	for _, buf := range buffers {
		for _, pl := range buf {
			if pl.special {
				m.SetParticleAt(pl.pos, pl.p)
			}
		}
	}

	// Settle bookkeeping so the first tick starts from a clean state.
	cw, ch := m.ChunkCounts()
	for cx := 0; cx < cw; cx++ {
		for cy := 0; cy < ch; cy++ {
			m.GetChunkAt(Point{X: cx, Y: cy}).TriggerRefresh()
		}
	}
	return m, nil
}

// generateColumns rolls every cell in the half-open column range [start, end).
func generateColumns(start, end int, heights []int, cfg Config, rng *core.RNG) []placement {
	var out []placement
	for x := start; x < end; x++ {
		surface := heights[x]
		for y := 0; y < cfg.Height; y++ {
			if y > surface {
				continue // open air above the surface
			}
			depth := surface - y
			pos := Point{X: x, Y: y}
			if kind, ok := RollSpecial(depth, rng); ok {
				out = append(out, spawnSpecial(pos, kind, cfg, rng)...)
				continue
			}
			out = append(out, placement{pos: pos, p: particle.New(particle.CommonAtDepth(depth))})
		}
	}
	return out
}

// RollSpecial decides whether a special particle spawns at the given depth
// and, if so, which one. Two uniform draws on the spawn scale: the first
// against the summed eligible weights decides whether anything spawns, the
// second selects the kind by cumulative bucket.
func RollSpecial(depth int, rng *core.RNG) (particle.Kind, bool) {
	var eligible []particle.Kind
	for _, k := range particle.Specials() {
		if depth >= k.MinDepth() && depth < k.MaxDepth() {
			eligible = append(eligible, k)
		}
	}
	if len(eligible) == 0 {
		return particle.KindNone, false
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].SpawnWeight() < eligible[j].SpawnWeight()
	})

	total := 0
	for _, k := range eligible {
		total += k.SpawnWeight()
	}

	// [0 .. total .. SpawnScale): below the summed weight means spawn.
	if rng.IntN(particle.SpawnScale) >= total {
		return particle.KindNone, false
	}

	roll := rng.IntN(total)
	acc := 0
	for _, k := range eligible {
		acc += k.SpawnWeight()
		if roll < acc {
			return k, true
		}
	}
	// Unreachable: roll < total and the buckets sum to total.
	return eligible[len(eligible)-1], true
}

// spawnSpecial expands a rolled special into its placements: a single cell
// for gems, a clustered vein for ores.
func spawnSpecial(pos Point, kind particle.Kind, cfg Config, rng *core.RNG) []placement {
	p := particle.New(kind)
	out := []placement{{pos: pos, p: p, special: true}}
	if !kind.IsVeinForming() {
		return out
	}

	// 3-6 attempts at the 8-neighborhood, each placed with 70% probability
	// and clipped to map bounds.
	attempts := rng.Range(3, 6)
	for i := 0; i < attempts; i++ {
		dx := rng.Range(-1, 1)
		dy := rng.Range(-1, 1)
		if dx == 0 && dy == 0 {
			continue
		}
		nx := pos.X + dx
		ny := pos.Y + dy
		if nx < 0 || ny < 0 || nx >= cfg.Width || ny >= cfg.Height {
			continue
		}
		if rng.Chance(0.7) {
			out = append(out, placement{pos: Point{X: nx, Y: ny}, p: p, special: true})
		}
	}
	return out
}
