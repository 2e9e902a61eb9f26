package world

import (
	"sort"
	"sync"

	"sandfall/pkg/core"
)

// Tick advances the world by one fixed timestep: recompute the active region
// around the focal point, simulate every active chunk in parallel, apply the
// queued cross-chunk moves sequentially, run one interaction pass, and
// refresh bookkeeping on dirty chunks.
//
// All parallel chunk simulation completes and commits before the apply phase
// begins, so no chunk ever observes a neighbor's in-progress state within a
// tick.
func (m *Map) Tick(focus Point) {
	m.tick++
	m.ActivateAround(focus)
	m.refreshDirty()
	moves := m.simulateActive()
	m.applyMoves(moves)
	m.processInteractions()
	m.refreshDirty()
}

// TickCount returns the number of ticks simulated so far.
func (m *Map) TickCount() uint64 { return m.tick }

// chunkStream derives a per-chunk RNG stream identifier from the tick and the
// chunk position, so a fixed world seed reproduces a run regardless of
// goroutine scheduling.
func chunkStream(tick uint64, pos Point, salt uint64) uint64 {
	z := tick ^ uint64(pos.X)<<24 ^ uint64(pos.Y)<<44 ^ salt<<60
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// simulateActive runs the per-chunk cellular-automaton step over the active
// region. Each goroutine reads the map's prior state and writes only its own
// result slot, so no locking is needed; the shared move queue collects
// cross-chunk destinations. Results are committed after the join barrier.
func (m *Map) simulateActive() []ParticleMove {
	positions := m.ActiveChunks()
	results := make([]Chunk, len(positions))
	queued := make([][]ParticleMove, len(positions))
	simulated := make([]bool, len(positions))

	var wg sync.WaitGroup
	for i, pos := range positions {
		chunk := m.GetChunkAt(pos)
		if !chunk.ShouldSimulate() {
			continue
		}
		simulated[i] = true
		wg.Add(1)
		go func(i int, chunk *Chunk, pos Point) {
			defer wg.Done()
			rng := core.NewStreamRNG(m.seed, chunkStream(m.tick, pos, 1))
			results[i], queued[i] = chunk.Simulate(m, m.rules, rng)
		}(i, chunk, pos)
	}
	wg.Wait()

	var moves []ParticleMove
	for i, pos := range positions {
		if !simulated[i] {
			continue
		}
		*m.GetChunkAt(pos) = results[i]
		moves = append(moves, queued[i]...)
	}
	return moves
}

// applyMoves resolves the cross-chunk move queue in a fixed, deterministic
// order: sorted by target row, then column, then source. Movers were already
// removed from their chunks' new state during the commit, so every source
// cell is clear before placement. When several moves contest one target the
// shortest source-to-target distance wins, ties broken by the smaller source
// position; losers are put back at their sources so no particle vanishes.
func (m *Map) applyMoves(moves []ParticleMove) {
	if len(moves) == 0 {
		return
	}
	sort.Slice(moves, func(i, j int) bool {
		a, b := moves[i], moves[j]
		if a.Target.Y != b.Target.Y {
			return a.Target.Y < b.Target.Y
		}
		if a.Target.X != b.Target.X {
			return a.Target.X < b.Target.X
		}
		if a.Source.Y != b.Source.Y {
			return a.Source.Y < b.Source.Y
		}
		return a.Source.X < b.Source.X
	})

	for i := 0; i < len(moves); {
		j := i
		for j < len(moves) && moves[j].Target == moves[i].Target {
			j++
		}
		group := moves[i:j]
		winner := 0
		best := distance2(group[0].Source, group[0].Target)
		for k := 1; k < len(group); k++ {
			if d := distance2(group[k].Source, group[k].Target); d < best {
				best = d
				winner = k
			}
			// Equal distance keeps the earlier entry: the sort order
			// already placed the smaller source first.
		}
		for k := range group {
			if k == winner {
				m.placeMove(group[k])
			} else {
				m.restore(group[k])
			}
		}
		i = j
	}
}

func distance2(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// placeMove attempts to land a winning move on its target cell. Plain moves
// require the target to still be empty; interaction results require the
// reacting occupant to still be there. Anything else falls back to the
// source.
func (m *Map) placeMove(mv ParticleMove) {
	occupant, occupied := m.ParticleAt(mv.Target)
	if mv.reacted {
		if occupied && occupant.Kind == mv.replaces {
			m.SetParticleAt(mv.Target, mv.Particle)
			return
		}
		m.restore(mv)
		return
	}
	if !occupied && m.inBounds(mv.Target) {
		m.SetParticleAt(mv.Target, mv.Particle)
		return
	}
	m.restore(mv)
}

// restore puts a move's original particle back at its source. The source is
// normally free (the mover left it during simulation); if another liquid
// slid into it meanwhile, the particle is displaced to the nearest free cell
// above so it is not lost.
func (m *Map) restore(mv ParticleMove) {
	pos := mv.Source
	for pos.Y < m.Height {
		if _, occupied := m.ParticleAt(pos); !occupied {
			m.SetParticleAt(pos, mv.fallback)
			return
		}
		pos.Y++
	}
}

// processInteractions runs one interaction pass over every active chunk.
func (m *Map) processInteractions() {
	if m.rules == nil || m.rules.Len() == 0 {
		return
	}
	for _, pos := range m.ActiveChunks() {
		chunk := m.GetChunkAt(pos)
		rng := core.NewStreamRNG(m.seed, chunkStream(m.tick, pos, 2))
		*chunk = chunk.ProcessInteractions(m.rules, rng)
	}
}
