package world

import (
	"sandfall/internal/particle"
	"sandfall/pkg/core"
)

// fluidSim carries the per-chunk state the fluid movement algorithm reads and
// writes: the immutable prior state (map + originating chunk), the chunk's
// private new-state buffer, and the interaction table.
type fluidSim struct {
	m        *Map
	chunk    *Chunk
	newCells *[ChunkCells]particle.Particle
	consumed map[int]bool
	rules    *particle.Rules
	rng      *core.RNG
}

// moveResult is a resolved destination for one liquid this tick.
type moveResult struct {
	target Point
	// place occupies the target cell: the liquid itself for a plain move,
	// or the interaction outcome.
	place    particle.Particle
	reacted  bool
	replaces particle.Kind
}

// step resolves one liquid's movement and commits the result. Same-chunk
// destinations are written directly into the new-state buffer (single
// writer); cross-chunk destinations are returned as a queued move because the
// destination chunk may be simulating concurrently.
func (s *fluidSim) step(p particle.Particle, src Point) (ParticleMove, bool) {
	res := s.calculate(p, src)

	if s.chunk.ContainsWorld(res.target) {
		idx := cellIndex(worldToLocal(res.target))
		if res.reacted {
			// The reacting occupant is consumed: overwrite any copy of it
			// already in the buffer and keep later iteration from
			// re-processing it.
			s.consumed[idx] = true
		}
		s.newCells[idx] = res.place
		return ParticleMove{}, false
	}

	return ParticleMove{
		Source:   src,
		Target:   res.target,
		Particle: res.place,
		reacted:  res.reacted,
		replaces: res.replaces,
		fallback: p,
	}, true
}

// calculate runs the movement scans for a liquid at world position src and
// returns where it ends up. When nothing is reachable the liquid stays put
// with its bias direction flipped so it tries the opposite way next tick.
func (s *fluidSim) calculate(p particle.Particle, src Point) moveResult {
	b := p.Kind.Buoyancy()
	v := p.Kind.Viscosity()

	// Vertical scan, farthest first: the single longest unobstructed fall
	// per tick keeps fast-draining columns visually smooth.
	for offset := v; offset >= 1; offset-- {
		y := src.Y + b*offset
		if y < 0 {
			y = 0
		}
		dst := Point{X: src.X, Y: y}
		if dst == src {
			continue
		}
		if s.canMove(dst) {
			return moveResult{target: dst, place: p}
		}
		if res, ok := s.tryInteract(p, dst); ok {
			return res
		}
	}

	// Diagonal scan, one step vertically and up to viscosity cells out.
	// A uniform random pick between two open sides prevents directional
	// bias in symmetric basins.
	y := src.Y + b
	if y < 0 {
		y = 0
	}
	if y != src.Y {
		for offset := v; offset >= 1; offset-- {
			right := Point{X: src.X + offset, Y: y}
			left := Point{X: src.X - offset, Y: y}
			rightOK := s.canMove(right)
			leftOK := s.canMove(left)
			switch {
			case rightOK && leftOK:
				if s.rng.Bool() {
					return moveResult{target: right, place: p}
				}
				return moveResult{target: left, place: p}
			case rightOK:
				return moveResult{target: right, place: p}
			case leftOK:
				return moveResult{target: left, place: p}
			}
			if res, ok := s.tryInteract(p, right); ok {
				return res
			}
			if res, ok := s.tryInteract(p, left); ok {
				return res
			}
		}
	}

	// Horizontal creep in the stored bias direction.
	if step := p.Dir.Step(); step != 0 {
		dst := Point{X: src.X + step, Y: src.Y}
		if s.canMove(dst) {
			return moveResult{target: dst, place: p}
		}
		if res, ok := s.tryInteract(p, dst); ok {
			return res
		}
	}

	// Blocked everywhere: stay and flip.
	return moveResult{target: src, place: p.Flipped()}
}

// canMove reports whether dst is a legal, empty destination: inside the map,
// empty in the prior state, and, for same-chunk targets, still empty in the
// in-progress new state.
func (s *fluidSim) canMove(dst Point) bool {
	if !s.m.inBounds(dst) {
		return false
	}
	if _, occupied := s.m.ParticleAt(dst); occupied {
		return false
	}
	if s.chunk.ContainsWorld(dst) {
		return s.newCells[cellIndex(worldToLocal(dst))].IsEmpty()
	}
	return true
}

// tryInteract checks whether the occupant of dst forms a registered pair with
// the moving liquid and, if so, resolves the rule. The result lands in the
// occupant's cell; the liquid itself is consumed by the reaction.
func (s *fluidSim) tryInteract(p particle.Particle, dst Point) (moveResult, bool) {
	occupant, ok := s.m.ParticleAt(dst)
	if !ok {
		return moveResult{}, false
	}
	rule, ok := s.rules.Lookup(p.Kind, occupant.Kind)
	if !ok {
		return moveResult{}, false
	}
	return moveResult{
		target:   dst,
		place:    resolveRule(rule, p, s.rng),
		reacted:  true,
		replaces: occupant.Kind,
	}, true
}
