package world

import (
	"sandfall/internal/particle"
	"sandfall/pkg/core"
)

// ChunkSize is the square size of a chunk in particle units. The spritesheet
// index buffer consumed by renderers is sized to match.
const ChunkSize = 32

// ChunkCells is the number of cells in one chunk.
const ChunkCells = ChunkSize * ChunkSize

// Point is a coordinate pair. Depending on context it holds world, local
// (in-chunk) or chunk coordinates; all are non-negative inside the world.
type Point struct {
	X, Y int
}

// ParticleMove is an ephemeral record of a liquid whose computed destination
// lies outside its originating chunk. Moves are queued during the parallel
// simulation phase and consumed by the sequential apply phase within the same
// tick; they are never persisted.
type ParticleMove struct {
	Source   Point
	Target   Point
	Particle particle.Particle

	// reacted marks a queued interaction: Particle is the interaction
	// result and may only land if the target still holds a replaces kind.
	reacted  bool
	replaces particle.Kind
	// fallback is restored at Source when the move loses a conflict or its
	// target is no longer available.
	fallback particle.Particle
}

// Chunk is a fixed-size square section of the world map and the unit of
// simulation and activation granularity.
type Chunk struct {
	// Pos is the chunk's position in chunk coordinates.
	Pos Point

	cells [ChunkCells]particle.Particle

	// dirty is set when the chunk has been mutated since the last refresh.
	dirty bool
	// hasLiquids is true iff any cell holds a liquid. Recomputed lazily by
	// TriggerRefresh, never incrementally.
	hasLiquids bool
}

// NewChunk creates an empty chunk at the given chunk position.
func NewChunk(pos Point) Chunk {
	return Chunk{Pos: pos}
}

func cellIndex(local Point) int { return local.Y*ChunkSize + local.X }

// InBounds reports whether a local position lies inside the chunk.
func (c *Chunk) InBounds(local Point) bool {
	return local.X >= 0 && local.X < ChunkSize && local.Y >= 0 && local.Y < ChunkSize
}

// Get returns the particle at the given local position. The second return is
// false for both empty cells and out-of-bounds positions: boundary lookups
// are a normal code path for neighbor scans at chunk edges.
func (c *Chunk) Get(local Point) (particle.Particle, bool) {
	if !c.InBounds(local) {
		return particle.Particle{}, false
	}
	p := c.cells[cellIndex(local)]
	return p, !p.IsEmpty()
}

// Set places a particle at the given local position, overwriting the cell and
// marking the chunk dirty. Passing the zero particle clears the cell.
// Out-of-bounds positions are a no-op.
func (c *Chunk) Set(local Point, p particle.Particle) {
	if !c.InBounds(local) {
		return
	}
	c.cells[cellIndex(local)] = p
	c.dirty = true
}

// Dirty reports whether the chunk has been mutated since the last refresh.
func (c *Chunk) Dirty() bool { return c.dirty }

// ShouldSimulate reports whether the chunk held any liquid at the last
// refresh.
func (c *Chunk) ShouldSimulate() bool { return c.hasLiquids }

// TriggerRefresh rescans the chunk's cells to recompute the simulation flag,
// then clears the dirty bit. This is the only place hasLiquids is updated;
// batching the rescan here keeps Set cheap.
func (c *Chunk) TriggerRefresh() {
	if !c.dirty {
		return
	}
	c.hasLiquids = false
	for i := range c.cells {
		if c.cells[i].IsLiquid() {
			c.hasLiquids = true
			break
		}
	}
	c.dirty = false
}

// WorldOrigin returns the world position of the chunk's (0,0) cell.
func (c *Chunk) WorldOrigin() Point {
	return Point{X: c.Pos.X * ChunkSize, Y: c.Pos.Y * ChunkSize}
}

// ContainsWorld reports whether a world position falls inside this chunk.
func (c *Chunk) ContainsWorld(pos Point) bool {
	o := c.WorldOrigin()
	return pos.X >= o.X && pos.X < o.X+ChunkSize && pos.Y >= o.Y && pos.Y < o.Y+ChunkSize
}

// Simulate advances every liquid in the chunk by one tick and returns the
// resulting chunk. The receiver is read-only: reads come from the prior state
// of the chunk and the map, same-chunk destinations are written into a
// private new-state buffer, and cross-chunk destinations are queued on moves
// for the sequential apply phase. When the chunk holds no liquids the clone
// is returned unchanged.
func (c *Chunk) Simulate(m *Map, rules *particle.Rules, rng *core.RNG) (Chunk, []ParticleMove) {
	next := *c
	if !c.hasLiquids {
		return next, nil
	}

	var moves []ParticleMove
	var newCells [ChunkCells]particle.Particle
	// Cells consumed by an interaction this pass; their occupants must not
	// also be copied or simulated.
	consumed := map[int]bool{}

	sim := fluidSim{
		m:        m,
		chunk:    c,
		newCells: &newCells,
		consumed: consumed,
		rules:    rules,
		rng:      rng,
	}

	origin := c.WorldOrigin()
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			idx := cellIndex(Point{X: x, Y: y})
			p := c.cells[idx]
			if p.IsEmpty() || consumed[idx] {
				continue
			}
			if !p.IsLiquid() {
				// Non-liquids stay in place unless a reaction already
				// claimed the cell.
				if newCells[idx].IsEmpty() {
					newCells[idx] = p
				}
				continue
			}
			world := Point{X: origin.X + x, Y: origin.Y + y}
			if mv, ok := sim.step(p, world); ok {
				moves = append(moves, mv)
			}
		}
	}

	next.cells = newCells
	// Mark dirty so bookkeeping and renderers pick up the new state.
	next.dirty = true
	return next, moves
}

// ProcessInteractions runs one interaction pass over the chunk: for every
// column, when the cell directly above (y+1) and the cell at y are both
// populated and a rule exists for the unordered pair, the cell at y receives
// the rule's outcome and the cell above is consumed. Exactly one pass per
// tick; no cascading re-evaluation, which bounds per-tick cost.
func (c *Chunk) ProcessInteractions(rules *particle.Rules, rng *core.RNG) Chunk {
	next := *c
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y+1 < ChunkSize; y++ {
			lower := c.cells[cellIndex(Point{X: x, Y: y})]
			upper := c.cells[cellIndex(Point{X: x, Y: y + 1})]
			if lower.IsEmpty() || upper.IsEmpty() {
				continue
			}
			rule, ok := rules.Lookup(upper.Kind, lower.Kind)
			if !ok {
				continue
			}
			result := resolveRule(rule, upper, rng)
			next.cells[cellIndex(Point{X: x, Y: y})] = result
			next.cells[cellIndex(Point{X: x, Y: y + 1})] = particle.Particle{}
			next.dirty = true
		}
	}
	return next
}

// resolveRule produces the particle occupying the target cell after an
// interaction. The source is the particle that moved (or sat above).
func resolveRule(rule particle.Rule, source particle.Particle, rng *core.RNG) particle.Particle {
	if rule.Effect == particle.Preserve {
		return particle.NewLiquid(source.Kind, particle.RandomDirection(rng))
	}
	return particle.New(rule.Result)
}

// SpritesheetIndices returns a render-index snapshot of the chunk: one sprite
// index per cell in row-major order, 0 for empty cells. The payload is opaque
// to the core and consumed by render collaborators.
func (c *Chunk) SpritesheetIndices() [ChunkCells]uint8 {
	var indices [ChunkCells]uint8
	for i := range c.cells {
		indices[i] = c.cells[i].Kind.SpriteIndex()
	}
	return indices
}

// Composition counts the chunk's particles by kind. Empty cells are skipped.
func (c *Chunk) Composition() map[particle.Kind]int {
	counts := map[particle.Kind]int{}
	for i := range c.cells {
		if k := c.cells[i].Kind; k != particle.KindNone {
			counts[k]++
		}
	}
	return counts
}
